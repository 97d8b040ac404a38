// File: database/repository/expense/expense_mongo.go
package expenseRepo

import (
	"context"
	"fmt"
	"time"

	"emjay/database"
	"emjay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ExpenseRepository interface {
	FindInRange(ctx context.Context, start, end time.Time) ([]models.Expense, error)
}

type mongoExpenseRepo struct {
	coll *mongo.Collection
}

func NewMongoExpenseRepo() ExpenseRepository {
	return &mongoExpenseRepo{coll: database.DB().Collection("expenses")}
}

// FindInRange returns expenses dated within [start, end], oldest first.
func (r *mongoExpenseRepo) FindInRange(ctx context.Context, start, end time.Time) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": start, "$lte": end}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, fmt.Errorf("error decoding expenses: %w", err)
	}
	return expenses, nil
}

// EnsureIndexes creates the date index used by the reports.
func EnsureIndexes(coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("date_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create expense indexes: %w", err)
	}
	return nil
}
