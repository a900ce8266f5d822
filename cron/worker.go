package cron

import (
	"context"
	"fmt"
	"time"

	"toolshare/config"
	"toolshare/services/tasks"
	"toolshare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RatingRecomputer rebuilds rating aggregates. Implemented by the review service.
type RatingRecomputer interface {
	Recompute(ctx context.Context, p tasks.RatingPayload) error
}

// QueueRedisOpt is the asynq connection shared by the producer and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewTaskMux routes background task types to their handlers.
func NewTaskMux(ratings RatingRecomputer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRecomputeRating, handleRatingTask(ratings))
	return mux
}

// InitWorker runs the async worker in background. Call Shutdown on the returned server when stopping.
func InitWorker(ratings RatingRecomputer) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewTaskMux(ratings)

	go func() {
		logger.Info("Starting background worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Background worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				// Queued tasks wait in Redis until a worker comes back.
				logger.Error("Max retry attempts reached, background worker disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleRatingTask(ratings RatingRecomputer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		p, err := tasks.ParseRatingPayload(task)
		if err != nil || p.RevieweeID == "" {
			logger.Error("Invalid rating task payload", zap.ByteString("payload", task.Payload()), zap.Error(err))
			return fmt.Errorf("invalid rating payload: %w", asynq.SkipRetry)
		}

		if err := ratings.Recompute(ctx, p); err != nil {
			logger.Warn("Rating recompute failed", zap.String("revieweeId", p.RevieweeID), zap.Error(err))
			return err
		}
		logger.Debug("Rating recomputed", zap.String("revieweeId", p.RevieweeID), zap.String("toolId", p.ToolID))
		return nil
	}
}
