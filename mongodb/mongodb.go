// Package mongodb is the persistence layer. All multi-document write pairs
// (a transaction write plus its account balance adjustment) go through the
// Store's optional-transaction runner so the ledger stays consistent on
// deployments that support multi-document transactions, with a sequential
// fallback on those that do not.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"finance-tracker/api/logger"
)

const (
	UserCollection        = "users"
	AccountCollection     = "accounts"
	TransactionCollection = "transactions"
	BudgetCollection      = "budgets"
)

var (
	ErrUserNotFound        = errors.New("User not found")
	ErrAccountNotFound     = errors.New("Account not found")
	ErrTransactionNotFound = errors.New("Transaction not found")
)

// illegalOperation is the server error code a standalone mongod (no replica
// set) returns when a transaction is attempted.
const illegalOperation = 20

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	// Set once the deployment reports transactions unsupported; later
	// ledger writes skip straight to the sequential path.
	txnUnsupported atomic.Bool
}

func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	logger.Get().Info("successfully connected to MongoDB",
		zap.String("database", database))
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from MongoDB: %w", err)
	}
	logger.Get().Info("successfully disconnected from MongoDB")
	return nil
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// withOptionalTxn runs work inside one multi-document transaction when the
// deployment supports it. If the server rejects the transaction outright,
// the same writes are re-issued sequentially, accepting that a crash
// mid-sequence leaves the balance and the ledger to be reconciled manually.
// Every other error propagates unchanged.
func (s *Store) withOptionalTxn(ctx context.Context, work func(ctx context.Context) error) error {
	if s.txnUnsupported.Load() {
		return work(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, work(ctx)
	})
	if err == nil {
		return nil
	}
	if !isTxnUnsupported(err) {
		return err
	}

	s.txnUnsupported.Store(true)
	logger.Get().Warn("deployment does not support multi-document transactions, using sequential writes",
		zap.Error(err))
	return work(ctx)
}

func isTxnUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == illegalOperation
}
