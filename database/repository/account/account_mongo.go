// File: database/repository/account/account_mongo.go
package accountRepo

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

type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// AdminTokens returns the non-empty FCM tokens of ADMIN accounts.
	AdminTokens(ctx context.Context) ([]string, error)
	// RecordLogin stores the issued token hash and, when set, the device push token.
	RecordLogin(ctx context.Context, id, tokenHash, fcmToken string, at time.Time) error
}

type mongoAccountRepo struct {
	coll *mongo.Collection
}

func NewMongoAccountRepo() AccountRepository {
	return &mongoAccountRepo{coll: database.DB().Collection("accounts")}
}

func (r *mongoAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Account
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", username, err)
	}
	return &a, nil
}

func (r *mongoAccountRepo) AdminTokens(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"accountType": models.AccountAdmin,
		"fcmToken":    bson.M{"$exists": true, "$ne": ""},
	}
	opts := options.Find().SetProjection(bson.M{"fcmToken": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		FCMToken string `bson:"fcmToken"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding admin tokens: %w", err)
	}

	tokens := make([]string, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.FCMToken)
	}
	return tokens, nil
}

func (r *mongoAccountRepo) RecordLogin(ctx context.Context, id, tokenHash, fcmToken string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"tokenHash": tokenHash, "lastLoginAt": at}
	if fcmToken != "" {
		set["fcmToken"] = fcmToken
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to record login for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("account %s not found", id)
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the accounts collection.
func EnsureIndexes(coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_username"),
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}
