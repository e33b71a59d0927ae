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

// CreateAccount inserts the account. The user's first account is always the
// default; when a later account asks to be default, every other account is
// demoted first so at most one default exists per user.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	accounts := s.collection(AccountCollection)

	existing, err := accounts.CountDocuments(ctx, bson.M{"user_id": account.UserID})
	if err != nil {
		return fmt.Errorf("error counting accounts: %w", err)
	}
	if existing == 0 {
		account.IsDefault = true
	}

	if account.IsDefault {
		if err := s.demoteDefaultAccounts(ctx, account.UserID); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	res, err := accounts.InsertOne(ctx, account)
	if err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	account.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// ListAccounts returns the user's accounts, newest first, each annotated
// with its transaction count.
func (s *Store) ListAccounts(ctx context.Context, userID bson.ObjectID) ([]models.AccountWithCount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.collection(AccountCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching accounts: %w", err)
	}

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("error decoding accounts: %w", err)
	}

	out := make([]models.AccountWithCount, 0, len(accounts))
	for _, account := range accounts {
		count, err := s.collection(TransactionCollection).CountDocuments(ctx, bson.M{"account_id": account.ID})
		if err != nil {
			return nil, fmt.Errorf("error counting transactions: %w", err)
		}
		out = append(out, models.AccountWithCount{Account: account, TransactionCount: count})
	}
	return out, nil
}

// GetAccount returns the account only when it belongs to the user; a
// foreign account surfaces as not found.
func (s *Store) GetAccount(ctx context.Context, userID, accountID bson.ObjectID) (*models.Account, error) {
	var account models.Account
	err := s.collection(AccountCollection).FindOne(ctx, bson.M{"_id": accountID, "user_id": userID}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	return &account, nil
}

// GetAccountWithTransactions returns the owned account plus its
// transactions ordered by date descending.
func (s *Store) GetAccountWithTransactions(ctx context.Context, userID, accountID bson.ObjectID) (*models.Account, []models.Transaction, error) {
	account, err := s.GetAccount(ctx, userID, accountID)
	if err != nil {
		return nil, nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection(TransactionCollection).Find(ctx, bson.M{"account_id": account.ID}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return account, txns, nil
}

// SetDefaultAccount makes the account the user's default, demoting any
// previous one.
func (s *Store) SetDefaultAccount(ctx context.Context, userID, accountID bson.ObjectID) (*models.Account, error) {
	if err := s.demoteDefaultAccounts(ctx, userID); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var account models.Account
	err := s.collection(AccountCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": accountID, "user_id": userID},
		bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("error updating default account: %w", err)
	}
	return &account, nil
}

func (s *Store) demoteDefaultAccounts(ctx context.Context, userID bson.ObjectID) error {
	_, err := s.collection(AccountCollection).UpdateMany(ctx,
		bson.M{"user_id": userID, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false}},
	)
	if err != nil {
		return fmt.Errorf("error demoting default accounts: %w", err)
	}
	return nil
}
