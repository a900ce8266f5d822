package booking

import (
	"context"

	"toolshare/models"

	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByRenter(ctx context.Context, renterID string) ([]models.Booking, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByParticipant(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAwaitingPayment(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) SaveTransition(ctx context.Context, b *models.Booking, expectedVersion int) error {
	args := m.Called(ctx, b, expectedVersion)
	if args.Error(0) == nil {
		b.Version = expectedVersion + 1
	}
	return args.Error(0)
}

func (m *MockBookingRepository) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) Create(ctx context.Context, tool *models.Tool) error {
	return m.Called(ctx, tool).Error(0)
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

func (m *MockToolRepository) Replace(ctx context.Context, tool *models.Tool) error {
	return m.Called(ctx, tool).Error(0)
}

func (m *MockToolRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockToolRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Tool, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockToolRepository) Search(ctx context.Context, c models.ToolSearchCriteria) ([]models.Tool, int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]models.Tool), args.Get(1).(int64), args.Error(2)
}

func (m *MockToolRepository) UpdateRating(ctx context.Context, id string, stats models.RatingStats) error {
	return m.Called(ctx, id, stats).Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, b *models.Booking, amount int64) (*PaymentIntent, error) {
	args := m.Called(ctx, b, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentIntent), args.Error(1)
}

func (m *MockPaymentGateway) GetIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PaymentIntent), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	return m.Called(ctx, userID, title, body, data).Error(0)
}
