package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

type RecurringInterval string

const (
	RecurringDaily   RecurringInterval = "DAILY"
	RecurringWeekly  RecurringInterval = "WEEKLY"
	RecurringMonthly RecurringInterval = "MONTHLY"
	RecurringYearly  RecurringInterval = "YEARLY"
)

func (r RecurringInterval) Valid() bool {
	switch r {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringYearly:
		return true
	}
	return false
}

// Transaction amounts are always stored positive; the sign applied to the
// account balance is implied by Type.
type Transaction struct {
	ID                bson.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID            bson.ObjectID     `bson:"user_id" json:"user_id"`
	AccountID         bson.ObjectID     `bson:"account_id" json:"account_id"`
	Type              TransactionType   `bson:"type" json:"type"`
	Amount            float64           `bson:"amount" json:"amount"`
	Description       string            `bson:"description,omitempty" json:"description,omitempty"`
	Date              time.Time         `bson:"date" json:"date"`
	Category          string            `bson:"category" json:"category"`
	ReceiptURL        string            `bson:"receipt_url,omitempty" json:"receipt_url,omitempty"`
	IsRecurring       bool              `bson:"is_recurring" json:"is_recurring"`
	RecurringInterval RecurringInterval `bson:"recurring_interval,omitempty" json:"recurring_interval,omitempty"`
	NextRecurringDate *time.Time        `bson:"next_recurring_date,omitempty" json:"next_recurring_date,omitempty"`
	LastProcessed     *time.Time        `bson:"last_processed,omitempty" json:"last_processed,omitempty"`
	Status            TransactionStatus `bson:"status" json:"status"`
	CreatedAt         time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `bson:"updated_at" json:"updated_at"`
}
