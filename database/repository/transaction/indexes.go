// FILE: database/repository/transaction/indexes.go
package transactionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the transactions collection.
func EnsureIndexes(coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Statistics scans: completed visits by check-out time
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "checkOut", Value: 1}},
			Options: options.Index().SetName("status_checkout_idx"),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}},
			Options: options.Index().SetName("customer_idx").SetSparse(true),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create transaction indexes: %w", err)
	}
	return nil
}
