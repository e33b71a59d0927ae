package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker/api/ledger"
	"finance-tracker/api/logger"
	"finance-tracker/api/models"
)

type seedCategory struct {
	name string
	min  float64
	max  float64
}

var seedCategories = map[models.TransactionType][]seedCategory{
	models.TransactionTypeIncome: {
		{"salary", 5000, 8000},
		{"freelance", 1000, 3000},
		{"investments", 500, 2000},
		{"other-income", 100, 1000},
	},
	models.TransactionTypeExpense: {
		{"housing", 1000, 2000},
		{"transportation", 100, 500},
		{"groceries", 200, 600},
		{"utilities", 100, 300},
		{"entertainment", 50, 200},
		{"food", 50, 150},
		{"shopping", 100, 500},
		{"healthcare", 100, 1000},
		{"education", 200, 1000},
		{"travel", 500, 2000},
	},
}

// SeedDemoData wipes the first user's first account and fills it with 90
// days of generated transactions, pinning the balance to their signed sum.
// Guarded by the internal API key, not end-user auth.
func (h *Handler) SeedDemoData(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.store.FirstUser(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	account, err := h.store.FirstAccount(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now().UTC()
	var txns []models.Transaction
	balance := 0.0

	for daysAgo := 90; daysAgo >= 0; daysAgo-- {
		date := now.AddDate(0, 0, -daysAgo)
		perDay := rand.Intn(3) + 1

		for i := 0; i < perDay; i++ {
			txType := models.TransactionTypeExpense
			verb := "Paid for"
			if rand.Float64() < 0.4 {
				txType = models.TransactionTypeIncome
				verb = "Received"
			}
			cat := seedCategories[txType][rand.Intn(len(seedCategories[txType]))]
			amount := roundCents(cat.min + rand.Float64()*(cat.max-cat.min))

			txns = append(txns, models.Transaction{
				UserID:      user.ID,
				AccountID:   account.ID,
				Type:        txType,
				Amount:      amount,
				Description: fmt.Sprintf("%s %s", verb, cat.name),
				Date:        date,
				Category:    cat.name,
				Status:      models.TransactionStatusCompleted,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			balance += ledger.BalanceDelta(txType, amount)
		}
	}

	if err := h.store.ReplaceAccountTransactions(ctx, account.ID, txns, balance); err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("demo data seeded",
		zap.String("account_id", account.ID.Hex()),
		zap.Int("transactions", len(txns)),
		zap.Float64("balance", balance))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Created %d transactions", len(txns)),
	})
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
