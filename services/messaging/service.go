package messaging

import (
	"context"
	"time"

	messagingRepo "emjay/database/repository/messaging"
	"emjay/models"
	"emjay/utils"
)

// ChatLog records chat messages and keeps each customer's conversation
// summary in step with them.
type ChatLog struct {
	Repo messagingRepo.MessagingRepository
	Now  func() time.Time
}

func NewChatLog(repo messagingRepo.MessagingRepository) *ChatLog {
	return &ChatLog{Repo: repo}
}

func (c *ChatLog) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

func (c *ChatLog) RecordMessage(ctx context.Context, customerID, text string, from models.ChatReference) error {
	if customerID == "" {
		return utils.NewValidationError("customer_id", "customer is required")
	}
	if !from.Valid() {
		return utils.NewValidationError("from", "unknown sender")
	}
	return c.Repo.InsertMessage(ctx, &models.Message{
		CustomerID: customerID,
		Message:    text,
		From:       from,
		Timestamp:  c.now(),
	})
}

func (c *ChatLog) UpsertConversationSummary(ctx context.Context, customerID, lastMessage string, from models.ChatReference, unreadDelta int) error {
	if customerID == "" {
		return utils.NewValidationError("customer_id", "customer is required")
	}
	if !from.Valid() {
		return utils.NewValidationError("from", "unknown sender")
	}
	last := models.LastMessage{Message: lastMessage, Timestamp: c.now(), From: from}
	return c.Repo.UpsertConversation(ctx, customerID, last, unreadDelta)
}
