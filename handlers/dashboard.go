package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finance-tracker/api/models"
	"finance-tracker/api/mongodb"
)

// GetDashboardData is the dashboard projection: every transaction of the
// caller, newest first.
func (h *Handler) GetDashboardData(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	txns, err := h.store.ListTransactions(c.Request.Context(), user.ID, mongodb.TransactionFilter{})
	if err != nil {
		respondError(c, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txns)
}
