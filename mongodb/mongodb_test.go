package mongodb

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"finance-tracker/api/models"
)

func TestIsTxnUnsupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"illegal operation", mongo.CommandError{Code: illegalOperation, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"wrapped illegal operation", fmt.Errorf("write failed: %w", mongo.CommandError{Code: illegalOperation}), true},
		{"other command error", mongo.CommandError{Code: 112, Message: "WriteConflict"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTxnUnsupported(tt.err); got != tt.want {
				t.Errorf("isTxnUnsupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestTransactionFilterQuery(t *testing.T) {
	userID := bson.NewObjectID()
	accountID := bson.NewObjectID()
	expense := models.TransactionTypeExpense
	recurring := true

	tests := []struct {
		name   string
		filter TransactionFilter
		want   bson.M
	}{
		{
			"owner scope only",
			TransactionFilter{},
			bson.M{"user_id": userID},
		},
		{
			"account scoped",
			TransactionFilter{AccountID: &accountID},
			bson.M{"user_id": userID, "account_id": accountID},
		},
		{
			"all filters",
			TransactionFilter{AccountID: &accountID, Type: &expense, IsRecurring: &recurring},
			bson.M{"user_id": userID, "account_id": accountID, "type": expense, "is_recurring": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.query(userID); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("query() = %v, want %v", got, tt.want)
			}
		})
	}
}
