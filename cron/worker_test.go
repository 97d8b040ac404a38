package cron

import (
	"context"
	"errors"
	"testing"

	"emjay/models"
	"emjay/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	got []models.PushNotification
	err error
}

func (r *recordingSender) Send(_ context.Context, n models.PushNotification) error {
	r.got = append(r.got, n)
	return r.err
}

func Test_HandlePushTask_Delivers(t *testing.T) {
	sender := &recordingSender{}
	n := models.PushNotification{Title: "Emjay Booking", Body: "confirmed", Token: "tok"}
	task, _, err := tasks.NewPushTask(n)
	require.NoError(t, err)

	require.NoError(t, handlePushTask(sender, zap.NewNop())(context.Background(), task))
	assert.Equal(t, []models.PushNotification{n}, sender.got)
}

func Test_HandlePushTask_FailuresSkipRetry(t *testing.T) {
	sender := &recordingSender{err: errors.New("fcm down")}
	task, _, err := tasks.NewPushTask(models.PushNotification{Title: "t", Token: "tok"})
	require.NoError(t, err)

	err = handlePushTask(sender, zap.NewNop())(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = handlePushTask(sender, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypePushSend, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Len(t, sender.got, 1)
}
