// File: database/repository/transaction/interface.go
package transactionRepo

import (
	"context"
	"time"

	"emjay/database"
	"emjay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	// ReplaceVersioned writes tx only if the stored version equals tx.Version,
	// then advances tx.Version.
	ReplaceVersioned(ctx context.Context, tx *models.Transaction) error
	// PushAvailedService appends svc unless the service is already availed or the version moved.
	PushAvailedService(ctx context.Context, txID string, expectedVersion int, svc models.AvailedService) error
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	// FindCompleted returns COMPLETED visits with a DONE service checked out within [start, end].
	FindCompleted(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
}

type mongoTransactionRepo struct {
	coll *mongo.Collection
}

// NewMongoTransactionRepo constructs a new MongoDB TransactionRepository.
func NewMongoTransactionRepo() TransactionRepository {
	return &mongoTransactionRepo{
		coll: database.DB().Collection("transactions"),
	}
}

// NewTransactionRepoWithCollection is used by integration tests against a scratch database.
func NewTransactionRepoWithCollection(coll *mongo.Collection) TransactionRepository {
	return &mongoTransactionRepo{coll: coll}
}
