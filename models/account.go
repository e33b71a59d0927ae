package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

type Account struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"user_id"`
	Name      string        `bson:"name" json:"name"`
	Type      AccountType   `bson:"type" json:"type"`
	Balance   float64       `bson:"balance" json:"balance"`
	IsDefault bool          `bson:"is_default" json:"is_default"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// AccountWithCount is the list-view projection: the account document plus
// how many transactions reference it.
type AccountWithCount struct {
	Account
	TransactionCount int64 `json:"transaction_count"`
}
