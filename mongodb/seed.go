package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"finance-tracker/api/models"
)

// FirstAccount returns any account for the user, used only by the demo
// seeder.
func (s *Store) FirstAccount(ctx context.Context, userID bson.ObjectID) (*models.Account, error) {
	var account models.Account
	err := s.collection(AccountCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	return &account, nil
}

// ReplaceAccountTransactions wipes the account's transactions, inserts the
// generated set and pins the balance to its signed sum, as one logical unit.
func (s *Store) ReplaceAccountTransactions(ctx context.Context, accountID bson.ObjectID, txns []models.Transaction, balance float64) error {
	docs := make([]interface{}, len(txns))
	for i := range txns {
		docs[i] = txns[i]
	}

	return s.withOptionalTxn(ctx, func(ctx context.Context) error {
		if _, err := s.collection(TransactionCollection).DeleteMany(ctx, bson.M{"account_id": accountID}); err != nil {
			return fmt.Errorf("error clearing transactions: %w", err)
		}
		if _, err := s.collection(TransactionCollection).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("error inserting transactions: %w", err)
		}
		_, err := s.collection(AccountCollection).UpdateOne(ctx,
			bson.M{"_id": accountID},
			bson.M{"$set": bson.M{"balance": balance}},
		)
		if err != nil {
			return fmt.Errorf("error setting account balance: %w", err)
		}
		return nil
	})
}
