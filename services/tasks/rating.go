package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeRecomputeRating = "rating:recompute"

// RatingPayload identifies whose aggregates must be rebuilt after a new review.
type RatingPayload struct {
	RevieweeID string `json:"revieweeId"`
	ToolID     string `json:"toolId,omitempty"`
}

func NewRecomputeRatingTask(payload RatingPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRecomputeRating, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseRatingPayload decodes the payload of a rating task.
func ParseRatingPayload(t *asynq.Task) (RatingPayload, error) {
	var p RatingPayload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
