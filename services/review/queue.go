package review

import (
	"context"
	"fmt"

	"toolshare/services/tasks"

	"github.com/hibiken/asynq"
)

// AsynqEnqueuer publishes rating tasks to the background worker.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

func (q *AsynqEnqueuer) EnqueueRatingRecompute(ctx context.Context, p tasks.RatingPayload) error {
	task, opts, err := tasks.NewRecomputeRatingTask(p)
	if err != nil {
		return fmt.Errorf("failed to build rating task: %w", err)
	}
	if _, err := q.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue rating task: %w", err)
	}
	return nil
}
