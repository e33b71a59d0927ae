package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"finance-tracker/api/models"
)

// TransactionFilter narrows ListTransactions. Nil fields are ignored.
type TransactionFilter struct {
	AccountID   *bson.ObjectID
	Type        *models.TransactionType
	IsRecurring *bool
}

func (f TransactionFilter) query(userID bson.ObjectID) bson.M {
	q := bson.M{"user_id": userID}
	if f.AccountID != nil {
		q["account_id"] = *f.AccountID
	}
	if f.Type != nil {
		q["type"] = *f.Type
	}
	if f.IsRecurring != nil {
		q["is_recurring"] = *f.IsRecurring
	}
	return q
}

func (s *Store) GetTransaction(ctx context.Context, userID, id bson.ObjectID) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.collection(TransactionCollection).FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&txn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("error fetching transaction: %w", err)
	}
	return &txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, userID bson.ObjectID, filter TransactionFilter) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection(TransactionCollection).Find(ctx, filter.query(userID), opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return txns, nil
}

// FindTransactionsByIDs returns the subset of ids that exist and belong to
// the user. Foreign or missing ids are silently absent from the result.
func (s *Store) FindTransactionsByIDs(ctx context.Context, userID bson.ObjectID, ids []bson.ObjectID) ([]models.Transaction, error) {
	cursor, err := s.collection(TransactionCollection).Find(ctx, bson.M{
		"_id":     bson.M{"$in": ids},
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return txns, nil
}

// CreateTransaction inserts the transaction and applies delta to the owning
// account's balance as one logical unit.
func (s *Store) CreateTransaction(ctx context.Context, txn *models.Transaction, delta float64) error {
	now := time.Now().UTC()
	txn.ID = bson.NewObjectID()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	return s.withOptionalTxn(ctx, func(ctx context.Context) error {
		if _, err := s.collection(TransactionCollection).InsertOne(ctx, txn); err != nil {
			return fmt.Errorf("error creating transaction: %w", err)
		}
		return s.adjustBalance(ctx, txn.AccountID, delta)
	})
}

// UpdateTransaction replaces the mutable transaction fields and applies
// netDelta to the account balance as one logical unit.
func (s *Store) UpdateTransaction(ctx context.Context, txn *models.Transaction, netDelta float64) error {
	fields := bson.M{
		"type":                txn.Type,
		"amount":              txn.Amount,
		"description":         txn.Description,
		"date":                txn.Date,
		"category":            txn.Category,
		"is_recurring":        txn.IsRecurring,
		"recurring_interval":  txn.RecurringInterval,
		"next_recurring_date": txn.NextRecurringDate,
		"updated_at":          time.Now().UTC(),
	}

	return s.withOptionalTxn(ctx, func(ctx context.Context) error {
		res, err := s.collection(TransactionCollection).UpdateOne(ctx,
			bson.M{"_id": txn.ID, "user_id": txn.UserID},
			bson.M{"$set": fields},
		)
		if err != nil {
			return fmt.Errorf("error updating transaction: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrTransactionNotFound
		}
		return s.adjustBalance(ctx, txn.AccountID, netDelta)
	})
}

// DeleteTransactions removes the user's transactions with the given ids and
// applies one aggregated balance reversal per affected account.
func (s *Store) DeleteTransactions(ctx context.Context, userID bson.ObjectID, ids []bson.ObjectID, reversals map[bson.ObjectID]float64) error {
	return s.withOptionalTxn(ctx, func(ctx context.Context) error {
		_, err := s.collection(TransactionCollection).DeleteMany(ctx, bson.M{
			"_id":     bson.M{"$in": ids},
			"user_id": userID,
		})
		if err != nil {
			return fmt.Errorf("error deleting transactions: %w", err)
		}
		for accountID, delta := range reversals {
			if err := s.adjustBalance(ctx, accountID, delta); err != nil {
				return err
			}
		}
		return nil
	})
}

// MonthlyExpenseTotal sums the user's EXPENSE amounts for the calendar
// month containing now, optionally scoped to one account.
func (s *Store) MonthlyExpenseTotal(ctx context.Context, userID bson.ObjectID, accountID *bson.ObjectID, now time.Time) (float64, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	match := bson.M{
		"user_id": userID,
		"type":    models.TransactionTypeExpense,
		"date":    bson.M{"$gte": startOfMonth, "$lt": endOfMonth},
	}
	if accountID != nil {
		match["account_id"] = *accountID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := s.collection(TransactionCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating expenses: %w", err)
	}
	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding expense total: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (s *Store) adjustBalance(ctx context.Context, accountID bson.ObjectID, delta float64) error {
	_, err := s.collection(AccountCollection).UpdateOne(ctx,
		bson.M{"_id": accountID},
		bson.M{"$inc": bson.M{"balance": delta}},
	)
	if err != nil {
		return fmt.Errorf("error adjusting account balance: %w", err)
	}
	return nil
}
