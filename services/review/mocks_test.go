package review

import (
	"context"

	"toolshare/models"
	"toolshare/services/tasks"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *models.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) Exists(ctx context.Context, bookingID, reviewerID string) (bool, error) {
	args := m.Called(ctx, bookingID, reviewerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByReviewee(ctx context.Context, userID string, skip, limit int64) ([]models.Review, int64, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByTool(ctx context.Context, toolID string, skip, limit int64) ([]models.Review, int64, error) {
	args := m.Called(ctx, toolID, skip, limit)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RatingsForReviewee(ctx context.Context, userID string) ([]int, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReviewRepository) RatingsForTool(ctx context.Context, toolID, ownerID string) ([]int, error) {
	args := m.Called(ctx, toolID, ownerID)
	return args.Get(0).([]int), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByRenter(ctx context.Context, id string) ([]models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, id string) ([]models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByParticipant(ctx context.Context, id string) ([]models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAwaitingPayment(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) SaveTransition(ctx context.Context, b *models.Booking, v int) error {
	return m.Called(ctx, b, v).Error(0)
}

func (m *MockBookingRepository) Touch(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id string, fields bson.M) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRating(ctx context.Context, id string, stats models.RatingStats) error {
	return m.Called(ctx, id, stats).Error(0)
}

type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) Create(ctx context.Context, t *models.Tool) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockToolRepository) GetByID(ctx context.Context, id string) (*models.Tool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *MockToolRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Tool, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockToolRepository) Replace(ctx context.Context, t *models.Tool) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockToolRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockToolRepository) ListByOwner(ctx context.Context, id string) ([]models.Tool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockToolRepository) Search(ctx context.Context, c models.ToolSearchCriteria) ([]models.Tool, int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]models.Tool), args.Get(1).(int64), args.Error(2)
}

func (m *MockToolRepository) UpdateRating(ctx context.Context, id string, stats models.RatingStats) error {
	return m.Called(ctx, id, stats).Error(0)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueRatingRecompute(ctx context.Context, p tasks.RatingPayload) error {
	return m.Called(ctx, p).Error(0)
}

type MockSummaryInvalidator struct {
	mock.Mock
}

func (m *MockSummaryInvalidator) InvalidateUser(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}
