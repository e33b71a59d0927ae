package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"finance-tracker/api/logger"
	"finance-tracker/api/models"
	"finance-tracker/api/mongodb"
)

// GetCurrentBudget returns the caller's budget (null when unset) together
// with this calendar month's expense total, optionally scoped to one
// account via ?account_id=.
func (h *Handler) GetCurrentBudget(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var accountID *bson.ObjectID
	if raw := c.Query("account_id"); raw != "" {
		id, err := parseID(raw, mongodb.ErrAccountNotFound)
		if err != nil {
			respondError(c, err)
			return
		}
		accountID = &id
	}

	budget, err := h.store.GetBudget(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	expenses, err := h.store.MonthlyExpenseTotal(c.Request.Context(), user.ID, accountID, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BudgetStatus{Budget: budget, CurrentExpenses: expenses})
}

type updateBudgetRequest struct {
	Amount float64 `json:"amount"`
}

// UpdateBudget upserts the caller's single budget amount.
func (h *Handler) UpdateBudget(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}
	if req.Amount <= 0 {
		respondValidation(c, "Budget amount must be positive")
		return
	}

	budget, err := h.store.UpsertBudget(c.Request.Context(), user.ID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("budget updated",
		zap.String("user_id", user.ID.Hex()),
		zap.Float64("amount", budget.Amount))
	c.JSON(http.StatusOK, budget)
}
