// File: database/repository/messaging/messaging_mongo.go
package messagingRepo

import (
	"context"
	"fmt"
	"time"

	"emjay/database"
	"emjay/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessagingRepository interface {
	InsertMessage(ctx context.Context, msg *models.Message) error
	// UpsertConversation sets the last message and bumps the unread counter of the recipient.
	UpsertConversation(ctx context.Context, customerID string, last models.LastMessage, unreadDelta int) error
}

type mongoMessagingRepo struct {
	messages      *mongo.Collection
	conversations *mongo.Collection
}

func NewMongoMessagingRepo() MessagingRepository {
	db := database.DB()
	return &mongoMessagingRepo{
		messages:      db.Collection("messages"),
		conversations: db.Collection("conversations"),
	}
}

func (r *mongoMessagingRepo) InsertMessage(ctx context.Context, msg *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *mongoMessagingRepo) UpsertConversation(ctx context.Context, customerID string, last models.LastMessage, unreadDelta int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Messages from the shop are unread by the customer and vice versa.
	unreadField := "customerUnreadCount"
	if last.From == models.FromCustomer {
		unreadField = "emjayUnreadCount"
	}

	update := bson.M{
		"$set": bson.M{
			"lastMessage": last,
			"updatedAt":   time.Now(),
		},
		"$inc":         bson.M{unreadField: unreadDelta},
		"$setOnInsert": bson.M{"id": uuid.New().String()},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.conversations.UpdateOne(ctx, bson.M{"customerId": customerID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert conversation for %s: %w", customerID, err)
	}
	return nil
}

// EnsureIndexes keeps one conversation per customer and orders message history.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection("conversations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_conversation_customer"),
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}

	_, err = db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("customer_timestamp"),
	})
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
