package customerRepo

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

// GetByID returns nil, nil when no customer matches.
func (r *mongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &c, nil
}

func (r *mongoCustomerRepo) UpdateLoyalty(ctx context.Context, id string, expectedVersion int, txID string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error {
	filter := versionFilter(id, expectedVersion)
	filter["accruedTransactions"] = bson.M{"$ne": txID}
	return r.writeLoyalty(ctx, filter, bson.M{"$addToSet": bson.M{"accruedTransactions": txID}}, id, points, vehicle, counts)
}

func (r *mongoCustomerRepo) RevertLoyalty(ctx context.Context, id string, expectedVersion int, txID string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error {
	filter := versionFilter(id, expectedVersion)
	filter["accruedTransactions"] = txID
	return r.writeLoyalty(ctx, filter, bson.M{"$pull": bson.M{"accruedTransactions": txID}}, id, points, vehicle, counts)
}

func (r *mongoCustomerRepo) writeLoyalty(ctx context.Context, filter, update bson.M, id string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	countField := "carWashServiceCount"
	if vehicle == models.VehicleMotorcycle {
		countField = "motoWashServiceCount"
	}
	update["$set"] = bson.M{
		"points":    points,
		countField:  counts,
		"updatedAt": time.Now(),
	}
	update["$inc"] = bson.M{"version": 1}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update loyalty for customer %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	return nil
}

// versionFilter matches id at expectedVersion. Documents written without a
// version field count as version 0.
func versionFilter(id string, expectedVersion int) bson.M {
	if expectedVersion == 0 {
		return bson.M{"id": id, "$or": bson.A{
			bson.M{"version": 0},
			bson.M{"version": bson.M{"$exists": false}},
		}}
	}
	return bson.M{"id": id, "version": expectedVersion}
}

// EnsureIndexes creates the necessary indexes on the customers collection.
func EnsureIndexes(coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "contactNumber", Value: 1}},
			Options: options.Index().SetName("contact_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}
