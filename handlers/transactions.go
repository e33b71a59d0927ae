package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"finance-tracker/api/ledger"
	"finance-tracker/api/logger"
	"finance-tracker/api/models"
	"finance-tracker/api/mongodb"
)

type transactionRequest struct {
	Type              string    `json:"type"`
	Amount            float64   `json:"amount"`
	AccountID         string    `json:"account_id"`
	Description       string    `json:"description"`
	Date              time.Time `json:"date"`
	Category          string    `json:"category"`
	ReceiptURL        string    `json:"receipt_url"`
	IsRecurring       bool      `json:"is_recurring"`
	RecurringInterval string    `json:"recurring_interval"`
}

func (r *transactionRequest) validate() string {
	if !models.TransactionType(r.Type).Valid() {
		return "Invalid transaction type"
	}
	if r.Amount <= 0 {
		return "Amount must be positive"
	}
	if r.Date.IsZero() {
		return "Date is required"
	}
	if r.Category == "" {
		return "Category is required"
	}
	if r.IsRecurring && !models.RecurringInterval(r.RecurringInterval).Valid() {
		return "Invalid recurring interval"
	}
	return ""
}

// recurrence returns the interval and next occurrence for the payload, or
// zero values when the transaction is not recurring.
func (r *transactionRequest) recurrence() (models.RecurringInterval, *time.Time) {
	if !r.IsRecurring {
		return "", nil
	}
	interval := models.RecurringInterval(r.RecurringInterval)
	next := ledger.NextRecurringDate(r.Date, interval)
	return interval, &next
}

// CreateTransaction records the transaction and moves the account balance
// by its signed amount as one logical unit.
func (h *Handler) CreateTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidation(c, msg)
		return
	}

	accountID, err := parseID(req.AccountID, mongodb.ErrAccountNotFound)
	if err != nil {
		respondError(c, err)
		return
	}
	account, err := h.store.GetAccount(c.Request.Context(), user.ID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	interval, next := req.recurrence()
	txn := &models.Transaction{
		UserID:            user.ID,
		AccountID:         account.ID,
		Type:              models.TransactionType(req.Type),
		Amount:            req.Amount,
		Description:       req.Description,
		Date:              req.Date,
		Category:          req.Category,
		ReceiptURL:        req.ReceiptURL,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: interval,
		NextRecurringDate: next,
		Status:            models.TransactionStatusCompleted,
	}

	delta := ledger.BalanceDelta(txn.Type, txn.Amount)
	if err := h.store.CreateTransaction(c.Request.Context(), txn, delta); err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("transaction created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("transaction_id", txn.ID.Hex()),
		zap.String("type", string(txn.Type)),
		zap.Float64("amount", txn.Amount))
	c.JSON(http.StatusCreated, txn)
}

// UpdateTransaction replaces the transaction fields and applies the net
// balance change (new signed delta minus old) to its account. The
// transaction stays on the account it was created on.
func (h *Handler) UpdateTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, err := parseID(c.Param("id"), mongodb.ErrTransactionNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidation(c, msg)
		return
	}

	original, err := h.store.GetTransaction(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	netDelta := ledger.NetDelta(original.Type, original.Amount, models.TransactionType(req.Type), req.Amount)

	interval, next := req.recurrence()
	updated := &models.Transaction{
		ID:                original.ID,
		UserID:            user.ID,
		AccountID:         original.AccountID,
		Type:              models.TransactionType(req.Type),
		Amount:            req.Amount,
		Description:       req.Description,
		Date:              req.Date,
		Category:          req.Category,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: interval,
		NextRecurringDate: next,
	}
	if err := h.store.UpdateTransaction(c.Request.Context(), updated, netDelta); err != nil {
		respondError(c, err)
		return
	}

	txn, err := h.store.GetTransaction(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("transaction updated",
		zap.String("user_id", user.ID.Hex()),
		zap.String("transaction_id", id.Hex()),
		zap.Float64("net_delta", netDelta))
	c.JSON(http.StatusOK, txn)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, err := parseID(c.Param("id"), mongodb.ErrTransactionNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	txn, err := h.store.GetTransaction(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *Handler) GetUserTransactions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var filter mongodb.TransactionFilter
	if raw := c.Query("account_id"); raw != "" {
		accountID, err := parseID(raw, mongodb.ErrAccountNotFound)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.AccountID = &accountID
	}
	if raw := c.Query("type"); raw != "" {
		txType := models.TransactionType(raw)
		if !txType.Valid() {
			respondValidation(c, "Invalid transaction type")
			return
		}
		filter.Type = &txType
	}
	if raw := c.Query("recurring"); raw != "" {
		recurring := raw == "true"
		filter.IsRecurring = &recurring
	}

	txns, err := h.store.ListTransactions(c.Request.Context(), user.ID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txns)
}

type bulkDeleteRequest struct {
	TransactionIDs []string `json:"transaction_ids"`
}

// BulkDeleteTransactions removes the given transactions and reverses their
// effect on each touched account, one aggregated update per account.
func (h *Handler) BulkDeleteTransactions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}
	if len(req.TransactionIDs) == 0 {
		respondValidation(c, "No transaction ids given")
		return
	}

	ids := make([]bson.ObjectID, 0, len(req.TransactionIDs))
	for _, raw := range req.TransactionIDs {
		id, err := parseID(raw, mongodb.ErrTransactionNotFound)
		if err != nil {
			respondError(c, err)
			return
		}
		ids = append(ids, id)
	}

	txns, err := h.store.FindTransactionsByIDs(c.Request.Context(), user.ID, ids)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(txns) == 0 {
		respondError(c, mongodb.ErrTransactionNotFound)
		return
	}

	reversals := ledger.ReversalsByAccount(txns)
	if err := h.store.DeleteTransactions(c.Request.Context(), user.ID, ids, reversals); err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("transactions deleted",
		zap.String("user_id", user.ID.Hex()),
		zap.Int("count", len(txns)),
		zap.Int("accounts_touched", len(reversals)))
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_count": len(txns)})
}
