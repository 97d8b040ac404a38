// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func EnsureIndexes(coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// One booking document per calendar date
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_date"),
		},
		{
			Keys:    bson.D{{Key: "slots.customerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("slot_customer_date_idx"),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
