package review

import (
	"context"

	bookingRepo "toolshare/database/repository/booking"
	reviewRepo "toolshare/database/repository/review"
	toolRepo "toolshare/database/repository/tool"
	userRepo "toolshare/database/repository/user"
	"toolshare/models"
	"toolshare/services/tasks"
)

const defaultPageSize = 10

// ReviewService creates reviews and maintains the derived rating aggregates.
type ReviewService interface {
	Create(ctx context.Context, reviewerID string, req models.CreateReviewRequest) (*models.Review, error)
	ListForUser(ctx context.Context, userID string, page, limit int) ([]models.Review, models.Pagination, error)
	ListForTool(ctx context.Context, toolID string, page, limit int) ([]models.Review, models.Pagination, error)
	Recompute(ctx context.Context, p tasks.RatingPayload) error
}

// Enqueuer schedules a rating recompute in the background.
type Enqueuer interface {
	EnqueueRatingRecompute(ctx context.Context, p tasks.RatingPayload) error
}

// SummaryInvalidator drops cached user summaries once their rating changes.
type SummaryInvalidator interface {
	InvalidateUser(ctx context.Context, userID string)
}

// DefaultReviewService recomputes inline when Queue is nil or enqueueing fails.
type DefaultReviewService struct {
	Reviews  reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Tools    toolRepo.ToolRepository
	Queue    Enqueuer
	// Summaries is optional.
	Summaries SummaryInvalidator
}
