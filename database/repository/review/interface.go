package reviewRepo

import (
	"context"

	"toolshare/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review. A second review for the same (booking, reviewer) yields database.ErrDuplicateKey.
	Create(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, bookingID, reviewerID string) (bool, error)
	// ListByReviewee returns one page of reviews received by a user, newest first.
	ListByReviewee(ctx context.Context, userID string, skip, limit int64) ([]models.Review, int64, error)
	// ListByTool returns one page of reviews attached to a tool's bookings, newest first.
	ListByTool(ctx context.Context, toolID string, skip, limit int64) ([]models.Review, int64, error)
	// RatingsForReviewee returns every rating the user has received.
	RatingsForReviewee(ctx context.Context, userID string) ([]int, error)
	// RatingsForTool returns ratings given to ownerID on bookings of toolID.
	RatingsForTool(ctx context.Context, toolID, ownerID string) ([]int, error)
}
