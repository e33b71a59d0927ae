package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"finance-tracker/api/llm"
	"finance-tracker/api/middleware"
	"finance-tracker/api/models"
	"finance-tracker/api/mongodb"
)

// Handler carries the injected collaborators; no package globals.
type Handler struct {
	store   *mongodb.Store
	scanner *llm.ReceiptScanner
}

func New(store *mongodb.Store, scanner *llm.ReceiptScanner) *Handler {
	return &Handler{store: store, scanner: scanner}
}

// currentUser resolves the verified claims to the application user record.
// On failure it writes the response and returns false.
func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	user, err := h.store.FindUserBySubject(c.Request.Context(), claims.Sub)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}

// parseID maps malformed ids to the entity's not-found error so they are
// indistinguishable from absent records.
func parseID(hex string, notFound error) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, notFound
	}
	return id, nil
}
