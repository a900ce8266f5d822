package review

import (
	"context"
	"errors"
	"math"
	"time"
	"unicode/utf8"

	"toolshare/database"
	"toolshare/models"
	"toolshare/services/tasks"
	"toolshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComputeRatingStats averages ratings and rounds to one decimal, halves away from zero.
func ComputeRatingStats(ratings []int) models.RatingStats {
	if len(ratings) == 0 {
		return models.RatingStats{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return models.RatingStats{Average: math.Round(avg*10) / 10, Count: len(ratings)}
}

func validRating(r *float64) (int, bool) {
	if r == nil || *r != math.Trunc(*r) || *r < 1 || *r > 5 {
		return 0, false
	}
	return int(*r), true
}

func (s *DefaultReviewService) Create(ctx context.Context, reviewerID string, req models.CreateReviewRequest) (*models.Review, error) {
	if req.BookingID == "" || req.Rating == nil {
		return nil, utils.NewValidationError("Booking and rating are required")
	}
	rating, ok := validRating(req.Rating)
	if !ok {
		return nil, utils.NewValidationError("Rating must be a whole number between 1 and 5")
	}
	if utf8.RuneCountInString(req.Comment) > models.MaxReviewCommentLength {
		return nil, utils.NewValidationError("Comment cannot exceed 500 characters")
	}

	b, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Booking not found")
	}
	if !b.IsParticipant(reviewerID) {
		return nil, utils.NewAuthorizationError("Not authorized to review this booking")
	}
	if b.Status != models.StatusCompleted {
		return nil, utils.NewConflictError("Can only review completed bookings")
	}

	exists, err := s.Reviews.Exists(ctx, b.ID, reviewerID)
	if err != nil {
		return nil, utils.NewInternalError("failed to check existing review", err)
	}
	if exists {
		return nil, utils.NewConflictError("You have already reviewed this booking")
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		ToolID:     b.ToolID,
		ReviewerID: reviewerID,
		RevieweeID: b.Counterpart(reviewerID),
		Rating:     rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, utils.NewConflictError("You have already reviewed this booking")
		}
		return nil, utils.NewInternalError("failed to save review", err)
	}

	payload := tasks.RatingPayload{RevieweeID: review.RevieweeID}
	if review.RevieweeID == b.OwnerID {
		payload.ToolID = b.ToolID
	}
	s.scheduleRecompute(ctx, payload)
	return review, nil
}

// scheduleRecompute never fails the caller. A stale rating is tolerated until the next review.
func (s *DefaultReviewService) scheduleRecompute(ctx context.Context, p tasks.RatingPayload) {
	logger := utils.GetLogger()
	if s.Queue != nil {
		err := s.Queue.EnqueueRatingRecompute(ctx, p)
		if err == nil {
			return
		}
		logger.Warn("rating task not queued, recomputing inline", zap.String("userId", p.RevieweeID), zap.Error(err))
	}
	if err := s.Recompute(ctx, p); err != nil {
		logger.Error("rating recompute failed", zap.String("userId", p.RevieweeID), zap.Error(err))
	}
}

// Recompute rebuilds the reviewee's aggregate from every review they received,
// and the tool's aggregate when the reviewee owns it.
func (s *DefaultReviewService) Recompute(ctx context.Context, p tasks.RatingPayload) error {
	ratings, err := s.Reviews.RatingsForReviewee(ctx, p.RevieweeID)
	if err != nil {
		return err
	}
	if err := s.Users.UpdateRating(ctx, p.RevieweeID, ComputeRatingStats(ratings)); err != nil {
		return err
	}
	if s.Summaries != nil {
		s.Summaries.InvalidateUser(ctx, p.RevieweeID)
	}
	if p.ToolID == "" {
		return nil
	}

	toolRatings, err := s.Reviews.RatingsForTool(ctx, p.ToolID, p.RevieweeID)
	if err != nil {
		return err
	}
	return s.Tools.UpdateRating(ctx, p.ToolID, ComputeRatingStats(toolRatings))
}

func (s *DefaultReviewService) ListForUser(ctx context.Context, userID string, page, limit int) ([]models.Review, models.Pagination, error) {
	page, limit = models.NormalizePage(page, limit, defaultPageSize)
	reviews, total, err := s.Reviews.ListByReviewee(ctx, userID, models.Skip(page, limit), int64(limit))
	if err != nil {
		return nil, models.Pagination{}, utils.NewInternalError("failed to list reviews", err)
	}
	return reviews, models.NewPagination(page, limit, total), nil
}

func (s *DefaultReviewService) ListForTool(ctx context.Context, toolID string, page, limit int) ([]models.Review, models.Pagination, error) {
	page, limit = models.NormalizePage(page, limit, defaultPageSize)
	reviews, total, err := s.Reviews.ListByTool(ctx, toolID, models.Skip(page, limit), int64(limit))
	if err != nil {
		return nil, models.Pagination{}, utils.NewInternalError("failed to list reviews", err)
	}
	return reviews, models.NewPagination(page, limit, total), nil
}
