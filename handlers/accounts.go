package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finance-tracker/api/logger"
	"finance-tracker/api/models"
	"finance-tracker/api/mongodb"
)

type createAccountRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Balance   string `json:"balance"`
	IsDefault bool   `json:"is_default"`
}

// CreateAccount opens a new account. The opening balance arrives as a
// string and must parse as a decimal number.
func (h *Handler) CreateAccount(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}
	if req.Name == "" {
		respondValidation(c, "Account name is required")
		return
	}
	accountType := models.AccountType(req.Type)
	if accountType != models.AccountTypeCurrent && accountType != models.AccountTypeSavings {
		respondValidation(c, "Invalid account type")
		return
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		respondValidation(c, "Invalid balance amount")
		return
	}

	account := &models.Account{
		UserID:    user.ID,
		Name:      req.Name,
		Type:      accountType,
		Balance:   balance.InexactFloat64(),
		IsDefault: req.IsDefault,
	}
	if err := h.store.CreateAccount(c.Request.Context(), account); err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("account created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("account_id", account.ID.Hex()),
		zap.Bool("is_default", account.IsDefault))
	c.JSON(http.StatusCreated, account)
}

func (h *Handler) GetUserAccounts(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	accounts, err := h.store.ListAccounts(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// UpdateDefaultAccount flips the default flag to the given account,
// demoting any other default the user has.
func (h *Handler) UpdateDefaultAccount(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	accountID, err := parseID(c.Param("id"), mongodb.ErrAccountNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	account, err := h.store.SetDefaultAccount(c.Request.Context(), user.ID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Get().Info("default account updated",
		zap.String("user_id", user.ID.Hex()),
		zap.String("account_id", account.ID.Hex()))
	c.JSON(http.StatusOK, account)
}

type accountWithTransactions struct {
	models.Account
	Transactions     []models.Transaction `json:"transactions"`
	TransactionCount int                  `json:"transaction_count"`
}

func (h *Handler) GetAccountWithTransactions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	accountID, err := parseID(c.Param("id"), mongodb.ErrAccountNotFound)
	if err != nil {
		respondError(c, err)
		return
	}

	account, txns, err := h.store.GetAccountWithTransactions(c.Request.Context(), user.ID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	c.JSON(http.StatusOK, accountWithTransactions{
		Account:          *account,
		Transactions:     txns,
		TransactionCount: len(txns),
	})
}
