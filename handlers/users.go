package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker/api/logger"
	"finance-tracker/api/middleware"
)

// SyncUser is the first-login path: it returns the application user record
// for the verified identity, creating it lazily from the claims.
func (h *Handler) SyncUser(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.store.FindOrCreateUser(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("user synced",
		zap.String("user_id", user.ID.Hex()),
		zap.String("subject_id", user.SubjectID))
	c.JSON(http.StatusOK, user)
}
