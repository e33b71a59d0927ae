package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"finance-tracker/api/logger"
)

const maxReceiptBytes = 8 << 20

// ScanReceipt sends the uploaded image to the vision model and returns the
// extracted transaction fields for the client to pre-fill a form with.
func (h *Handler) ScanReceipt(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Receipt scanning is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, "Receipt image is required")
		return
	}
	if fileHeader.Size > maxReceiptBytes {
		respondValidation(c, "Receipt image is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes))
	if err != nil {
		respondError(c, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	scan, err := h.scanner.Scan(c.Request.Context(), image, mimeType)
	if err != nil {
		logger.Get().Warn("receipt scan failed",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
		respondError(c, err)
		return
	}

	logger.Get().Info("receipt scanned",
		zap.String("user_id", user.ID.Hex()),
		zap.String("merchant", scan.MerchantName),
		zap.Float64("amount", scan.Amount))
	c.JSON(http.StatusOK, scan)
}
