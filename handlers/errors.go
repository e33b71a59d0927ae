package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker/api/llm"
	"finance-tracker/api/logger"
	"finance-tracker/api/mongodb"
)

// respondError is the single error-surfacing convention: one JSON shape,
// status derived from the error kind. Ownership failures come through as
// not-found so callers cannot probe for other users' records.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mongodb.ErrUserNotFound),
		errors.Is(err, mongodb.ErrAccountNotFound),
		errors.Is(err, mongodb.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, llm.ErrScanFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": llm.ErrScanFailed.Error()})
	default:
		logger.Get().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
