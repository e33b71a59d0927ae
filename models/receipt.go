package models

import "time"

// ReceiptScan is what the vision model extracts from a receipt image.
type ReceiptScan struct {
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	MerchantName string    `json:"merchant_name"`
}
