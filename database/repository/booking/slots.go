package bookingRepo

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

// GetByDate returns nil, nil when the date has not been opened.
func (r *mongoBookingRepo) GetByDate(ctx context.Context, date string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking for %s: %w", date, err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking for %s: %w", booking.Date, err)
	}
	return nil
}

// ReserveSlot assigns the slot only while it is still free and the customer
// holds no other incomplete slot on the date.
func (r *mongoBookingRepo) ReserveSlot(ctx context.Context, date, slotID, customerID, serviceID string, distance float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date": date,
		"$and": bson.A{
			bson.M{"slots": bson.M{"$elemMatch": bson.M{"id": slotID, "customerId": ""}}},
			bson.M{"slots": bson.M{"$not": bson.M{"$elemMatch": bson.M{"customerId": customerID, "isCompleted": false}}}},
		},
	}
	update := bson.M{"$set": bson.M{
		"slots.$[s].customerId": customerID,
		"slots.$[s].serviceId":  serviceID,
		"slots.$[s].distance":   distance,
		"updatedAt":             time.Now(),
	}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.id": slotID, "s.customerId": ""}},
	})

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to reserve slot %s on %s: %w", slotID, date, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	return nil
}

// ReleaseSlot clears the slot only when it belongs to customerID.
func (r *mongoBookingRepo) ReleaseSlot(ctx context.Context, date, slotID, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":  date,
		"slots": bson.M{"$elemMatch": bson.M{"id": slotID, "customerId": customerID}},
	}
	update := bson.M{"$set": bson.M{
		"slots.$.customerId": "",
		"slots.$.serviceId":  "",
		"slots.$.distance":   0,
		"updatedAt":          time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release slot %s on %s: %w", slotID, date, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	return nil
}

func (r *mongoBookingRepo) CompleteSlot(ctx context.Context, date, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":  date,
		"slots": bson.M{"$elemMatch": bson.M{"id": slotID, "customerId": bson.M{"$ne": ""}}},
	}
	update := bson.M{"$set": bson.M{
		"slots.$.isCompleted": true,
		"updatedAt":           time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to complete slot %s on %s: %w", slotID, date, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	return nil
}

func (r *mongoBookingRepo) ResetSlot(ctx context.Context, date, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":  date,
		"slots": bson.M{"$elemMatch": bson.M{"id": slotID, "customerId": bson.M{"$ne": ""}}},
	}
	update := bson.M{"$set": bson.M{
		"slots.$.customerId":  "",
		"slots.$.serviceId":   "",
		"slots.$.distance":    0,
		"slots.$.isCompleted": false,
		"updatedAt":           time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reset slot %s on %s: %w", slotID, date, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrVersionConflict
	}
	return nil
}

func (r *mongoBookingRepo) ScheduledSlots(ctx context.Context, fromDate, customerID string) ([]models.ScheduledSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	slotMatch := bson.M{"slots.customerId": bson.M{"$ne": ""}, "slots.isCompleted": false}
	if customerID != "" {
		slotMatch = bson.M{"slots.customerId": customerID, "slots.isCompleted": false}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": fromDate}}}},
		{{Key: "$unwind", Value: "$slots"}},
		{{Key: "$match", Value: slotMatch}},
		{{Key: "$replaceRoot", Value: bson.M{
			"newRoot": bson.M{"$mergeObjects": bson.A{"$slots", bson.M{"date": "$date"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating scheduled slots: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.ScheduledSlot{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding scheduled slots: %w", err)
	}
	return results, nil
}
