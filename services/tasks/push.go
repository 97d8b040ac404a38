package tasks

import (
	"encoding/json"
	"fmt"

	"emjay/models"

	"github.com/hibiken/asynq"
)

const TypePushSend = "push:send"

// NewPushTask wraps a notification for the push worker. Pushes are not retried.
func NewPushTask(n models.PushNotification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePushSend, b)
	opts := []asynq.Option{asynq.MaxRetry(0)}

	return task, opts, nil
}

func ParsePushTask(task *asynq.Task) (models.PushNotification, error) {
	var n models.PushNotification
	if err := json.Unmarshal(task.Payload(), &n); err != nil {
		return n, fmt.Errorf("invalid %s payload: %w", TypePushSend, err)
	}
	return n, nil
}
