// File: database/repository/transaction/transaction_mongo.go
package transactionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emjay/database"
	"emjay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no transaction matches.
func (r *mongoTransactionRepo) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tx models.Transaction
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", id, err)
	}
	return &tx, nil
}

func (r *mongoTransactionRepo) ReplaceVersioned(ctx context.Context, tx *models.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expected := tx.Version
	next := *tx
	next.Version = expected + 1
	next.UpdatedAt = time.Now()

	filter := bson.M{"id": tx.ID, "version": expected}
	res, err := r.coll.ReplaceOne(ctx, filter, next)
	if err != nil {
		return fmt.Errorf("failed to replace transaction %s: %w", tx.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	tx.Version = next.Version
	tx.UpdatedAt = next.UpdatedAt
	return nil
}

func (r *mongoTransactionRepo) PushAvailedService(ctx context.Context, txID string, expectedVersion int, svc models.AvailedService) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                        txID,
		"version":                   expectedVersion,
		"status":                    models.TransactionOngoing,
		"availedServices.serviceId": bson.M{"$ne": svc.ServiceID},
	}
	update := bson.M{
		"$push": bson.M{"availedServices": svc},
		"$inc":  bson.M{"version": 1},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add availed service to transaction %s: %w", txID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	return nil
}

func (r *mongoTransactionRepo) List(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	if f.Offset > 0 {
		opts.SetSkip(f.Offset)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txs := []models.Transaction{}
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("error decoding transactions: %w", err)
	}
	return txs, nil
}

func (r *mongoTransactionRepo) FindCompleted(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":                 models.TransactionCompleted,
		"checkOut":               bson.M{"$gte": start, "$lte": end},
		"availedServices.status": models.AvailedDone,
	}
	opts := options.Find().SetSort(bson.D{{Key: "checkOut", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed transactions: %w", err)
	}
	defer cursor.Close(ctx)

	txs := []models.Transaction{}
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("error decoding completed transactions: %w", err)
	}
	return txs, nil
}
