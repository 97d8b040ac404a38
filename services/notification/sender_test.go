package notification

import (
	"context"
	"errors"
	"testing"

	"emjay/models"
	"emjay/services/tasks"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFCM struct {
	single    []*messaging.Message
	multicast []*messaging.MulticastMessage
	failAll   bool
	err       error
}

func (f *fakeFCM) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.single = append(f.single, m)
	return "projects/emjay/messages/1", f.err
}

func (f *fakeFCM) SendEachForMulticast(_ context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.multicast = append(f.multicast, m)
	if f.err != nil {
		return nil, f.err
	}
	if f.failAll {
		return &messaging.BatchResponse{FailureCount: len(m.Tokens)}, nil
	}
	return &messaging.BatchResponse{SuccessCount: len(m.Tokens)}, nil
}

func Test_FCMSender_SingleToken(t *testing.T) {
	fcm := &fakeFCM{}
	s := &FCMSender{Client: fcm, Logger: zap.NewNop()}

	err := s.Send(context.Background(), models.PushNotification{
		Title: "Emjay Booking", Body: "confirmed", Token: "tok", Data: map[string]string{"type": "message"},
	})
	require.NoError(t, err)
	require.Len(t, fcm.single, 1)
	assert.Equal(t, "tok", fcm.single[0].Token)
	assert.Equal(t, "confirmed", fcm.single[0].Notification.Body)
	assert.Equal(t, "message", fcm.single[0].Data["type"])
	assert.Empty(t, fcm.multicast)
}

func Test_FCMSender_Multicast(t *testing.T) {
	fcm := &fakeFCM{}
	s := &FCMSender{Client: fcm, Logger: zap.NewNop()}

	require.NoError(t, s.Send(context.Background(), models.PushNotification{Title: "t", Tokens: []string{"a", "b"}}))
	require.Len(t, fcm.multicast, 1)
	assert.Equal(t, []string{"a", "b"}, fcm.multicast[0].Tokens)

	fcm.failAll = true
	assert.Error(t, s.Send(context.Background(), models.PushNotification{Title: "t", Tokens: []string{"a"}}))
}

func Test_FCMSender_Errors(t *testing.T) {
	s := &FCMSender{Client: &fakeFCM{err: errors.New("unavailable")}, Logger: zap.NewNop()}

	assert.ErrorIs(t, s.Send(context.Background(), models.PushNotification{Title: "t"}), ErrNoRecipient)
	assert.Error(t, s.Send(context.Background(), models.PushNotification{Title: "t", Token: "x"}))
}

type fakeQueue struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	q.opts = append(q.opts, opts)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func Test_QueuedPushSender_EnqueuesWithoutRetry(t *testing.T) {
	q := &fakeQueue{}
	s := &QueuedPushSender{Queue: q}
	n := models.PushNotification{Title: "New booking", Body: "Ana booked", Tokens: []string{"a1"}}

	require.NoError(t, s.Send(context.Background(), n))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, tasks.TypePushSend, q.tasks[0].Type())
	assert.Contains(t, q.opts[0], asynq.MaxRetry(0))

	got, err := tasks.ParsePushTask(q.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, n, got)

	assert.ErrorIs(t, s.Send(context.Background(), models.PushNotification{Title: "nobody"}), ErrNoRecipient)
	assert.Len(t, q.tasks, 1)
}
