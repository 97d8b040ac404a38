package notification

import (
	"context"
	"errors"
	"fmt"

	"emjay/models"
	"emjay/services/tasks"
	"emjay/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("push notification has no token")

// PushSender delivers a push notification to a token or a token list.
type PushSender interface {
	Send(ctx context.Context, n models.PushNotification) error
}

// fcmClient is the subset of *messaging.Client used here.
type fcmClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMSender sends through Firebase Cloud Messaging. A nil Client falls back
// to utils.FCMClient.
type FCMSender struct {
	Client fcmClient
	Logger *zap.Logger
}

func NewFCMSender() *FCMSender {
	return &FCMSender{}
}

func (s *FCMSender) client() (fcmClient, error) {
	if s.Client != nil {
		return s.Client, nil
	}
	if utils.FCMClient == nil {
		return nil, errors.New("firebase messaging is not initialized")
	}
	return utils.FCMClient, nil
}

func (s *FCMSender) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

var androidConfig = &messaging.AndroidConfig{
	Priority: "high",
	Notification: &messaging.AndroidNotification{
		ChannelID: "high_priority",
		Sound:     "default",
	},
}

var apnsConfig = &messaging.APNSConfig{
	Headers: map[string]string{
		"apns-priority":  "10",
		"apns-push-type": "alert",
	},
	Payload: &messaging.APNSPayload{
		Aps: &messaging.Aps{Sound: "default"},
	},
}

func (s *FCMSender) Send(ctx context.Context, n models.PushNotification) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	notif := &messaging.Notification{Title: n.Title, Body: n.Body}

	if n.Token != "" {
		id, err := client.Send(ctx, &messaging.Message{
			Token:        n.Token,
			Notification: notif,
			Data:         n.Data,
			Android:      androidConfig,
			APNS:         apnsConfig,
		})
		if err != nil {
			return fmt.Errorf("failed to send FCM message: %w", err)
		}
		s.logger().Debug("push sent", zap.String("messageId", id))
		return nil
	}

	if len(n.Tokens) == 0 {
		return ErrNoRecipient
	}
	resp, err := client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       n.Tokens,
		Notification: notif,
		Data:         n.Data,
		Android:      androidConfig,
		APNS:         apnsConfig,
	})
	if err != nil {
		return fmt.Errorf("failed to send FCM multicast: %w", err)
	}
	if resp.FailureCount > 0 {
		s.logger().Warn("some multicast pushes failed",
			zap.Int("success", resp.SuccessCount), zap.Int("failure", resp.FailureCount))
	}
	if resp.SuccessCount == 0 {
		return fmt.Errorf("all %d multicast pushes failed", resp.FailureCount)
	}
	return nil
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedPushSender hands notifications to the push worker so request
// handlers never wait on FCM.
type QueuedPushSender struct {
	Queue enqueuer
}

func NewQueuedPushSender(client *asynq.Client) *QueuedPushSender {
	return &QueuedPushSender{Queue: client}
}

func (s *QueuedPushSender) Send(ctx context.Context, n models.PushNotification) error {
	if n.Token == "" && len(n.Tokens) == 0 {
		return ErrNoRecipient
	}
	task, opts, err := tasks.NewPushTask(n)
	if err != nil {
		return err
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue push: %w", err)
	}
	return nil
}
