package cron

import (
	"context"
	"fmt"
	"time"

	"emjay/config"
	"emjay/services/notification"
	"emjay/services/tasks"
	"emjay/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns the client request handlers use to enqueue pushes.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(queueRedisOpt())
}

// InitPushWorker runs the push worker in background.
func InitPushWorker(sender notification.PushSender) *asynq.Server {
	logger := utils.GetLogger().With(zap.String("component", "push-worker"))

	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushSend, handlePushTask(sender, logger))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("starting push worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("push worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("push worker gave up after max attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return srv
}

func handlePushTask(sender notification.PushSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := tasks.ParsePushTask(task)
		if err != nil {
			logger.Warn("dropping push task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := sender.Send(ctx, n); err != nil {
			logger.Warn("push delivery failed", zap.String("title", n.Title), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to surface outages.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
