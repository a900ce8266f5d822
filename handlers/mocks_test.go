package handlers

import (
	"context"
	"io"

	"toolshare/models"
	"toolshare/services/tasks"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

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

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) booking(args mock.Arguments) (*models.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, renterID string, req models.CreateBookingRequest) (*models.Booking, error) {
	return m.booking(m.Called(ctx, renterID, req))
}

func (m *MockBookingService) GetBooking(ctx context.Context, id, requesterID string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, requesterID))
}

func (m *MockBookingService) MyBookings(ctx context.Context, userID string) ([]models.Booking, []models.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Booking), args.Get(1).([]models.Booking), args.Error(2)
}

func (m *MockBookingService) Approve(ctx context.Context, id, actorID string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, actorID))
}

func (m *MockBookingService) Decline(ctx context.Context, id, actorID string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, actorID))
}

func (m *MockBookingService) Cancel(ctx context.Context, id, actorID string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, actorID))
}

func (m *MockBookingService) MarkReturned(ctx context.Context, id, actorID string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, actorID))
}

func (m *MockBookingService) GetPaymentDetails(ctx context.Context, id, renterID string) (*models.PaymentDetails, error) {
	args := m.Called(ctx, id, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentDetails), args.Error(1)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, id, renterID string) (*models.Booking, error) {
	return m.booking(m.Called(ctx, id, renterID))
}

func (m *MockBookingService) ReconcilePayments(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockToolService struct {
	mock.Mock
}

func (m *MockToolService) tool(args mock.Arguments) (*models.Tool, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tool), args.Error(1)
}

func (m *MockToolService) CreateTool(ctx context.Context, ownerID string, in models.ToolInput, images []io.Reader) (*models.Tool, error) {
	return m.tool(m.Called(ctx, ownerID, in, images))
}

func (m *MockToolService) GetTool(ctx context.Context, id string) (*models.Tool, error) {
	return m.tool(m.Called(ctx, id))
}

func (m *MockToolService) UpdateTool(ctx context.Context, id, ownerID string, in models.ToolInput, images []io.Reader) (*models.Tool, error) {
	return m.tool(m.Called(ctx, id, ownerID, in, images))
}

func (m *MockToolService) DeleteTool(ctx context.Context, id, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *MockToolService) SetBlackouts(ctx context.Context, id, ownerID string, req models.BlackoutRequest) (*models.Tool, error) {
	return m.tool(m.Called(ctx, id, ownerID, req))
}

func (m *MockToolService) Search(ctx context.Context, c models.ToolSearchCriteria) (*models.ToolPage, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ToolPage), args.Error(1)
}

func (m *MockToolService) MyTools(ctx context.Context, ownerID string) ([]models.Tool, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Tool), args.Error(1)
}

func (m *MockToolService) CheckAvailability(ctx context.Context, id, start, end string) (*models.AvailabilityResult, error) {
	args := m.Called(ctx, id, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityResult), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, reviewerID string, req models.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, reviewerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListForUser(ctx context.Context, userID string, page, limit int) ([]models.Review, models.Pagination, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]models.Review), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockReviewService) ListForTool(ctx context.Context, toolID string, page, limit int) ([]models.Review, models.Pagination, error) {
	args := m.Called(ctx, toolID, page, limit)
	return args.Get(0).([]models.Review), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockReviewService) Recompute(ctx context.Context, p tasks.RatingPayload) error {
	return m.Called(ctx, p).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) authResponse(args mock.Arguments) (*models.AuthResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return m.authResponse(m.Called(ctx, req))
}

func (m *MockUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return m.authResponse(m.Called(ctx, req))
}

func (m *MockUserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	return m.authResponse(m.Called(ctx, refreshToken))
}

func (m *MockUserService) Logout(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdatePassword(ctx context.Context, id string, req models.UpdatePasswordRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, id string, file io.Reader) (*models.User, error) {
	args := m.Called(ctx, id, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
