package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Budget is the caller's single monthly budget. LastAlertSent is part of the
// stored document shape but no alerting job reads or writes it yet.
type Budget struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        bson.ObjectID `bson:"user_id" json:"user_id"`
	Amount        float64       `bson:"amount" json:"amount"`
	LastAlertSent *time.Time    `bson:"last_alert_sent,omitempty" json:"last_alert_sent,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

// BudgetStatus pairs the budget (possibly absent) with the current calendar
// month's expense total.
type BudgetStatus struct {
	Budget          *Budget `json:"budget"`
	CurrentExpenses float64 `json:"current_expenses"`
}
