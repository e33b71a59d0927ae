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

// GetBudget returns the user's budget, or nil when none has been set yet.
func (s *Store) GetBudget(ctx context.Context, userID bson.ObjectID) (*models.Budget, error) {
	var budget models.Budget
	err := s.collection(BudgetCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&budget)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching budget: %w", err)
	}
	return &budget, nil
}

// UpsertBudget creates or replaces the amount of the user's single budget.
func (s *Store) UpsertBudget(ctx context.Context, userID bson.ObjectID, amount float64) (*models.Budget, error) {
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var budget models.Budget
	err := s.collection(BudgetCollection).FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":         bson.M{"amount": amount, "updated_at": now},
			"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
		},
		opts,
	).Decode(&budget)
	if err != nil {
		return nil, fmt.Errorf("error upserting budget: %w", err)
	}
	return &budget, nil
}
