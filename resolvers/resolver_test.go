package resolvers

import (
	"context"
	"encoding/json"
	"testing"

	"toolshare/models"
	"toolshare/services/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func newResolver() (*Resolver, *MockUserRepository, *MockToolRepository) {
	users := new(MockUserRepository)
	tools := new(MockToolRepository)
	users.On("GetByIDs", mock.Anything, mock.Anything).Return([]models.User{
		{ID: "renter", Name: "Rita", RatingAvg: 4.5, RatingCount: 2},
		{ID: "owner", Name: "Omar"},
	}, nil)
	tools.On("GetByIDs", mock.Anything, []string{"t1"}).Return([]models.Tool{
		{ID: "t1", Title: "Drill", Images: []string{"a.jpg", "b.jpg"}, Price: models.ToolPrice{Daily: 8}},
	}, nil)
	return &Resolver{Users: users, Tools: tools}, users, tools
}

func TestMyBookings_SplitsAndExpands(t *testing.T) {
	r, users, _ := newResolver()
	asRenter := []models.Booking{{ID: "b1", ToolID: "t1", RenterID: "renter", OwnerID: "owner"}}
	asOwner := []models.Booking{
		{ID: "b2", ToolID: "t1", RenterID: "owner", OwnerID: "renter"},
		{ID: "b3", ToolID: "t1", RenterID: "owner", OwnerID: "renter"},
	}

	view, err := r.MyBookings(context.Background(), asRenter, asOwner)

	require.NoError(t, err)
	require.Len(t, view.AsRenter, 1)
	require.Len(t, view.AsOwner, 2)
	assert.Equal(t, "Rita", view.AsRenter[0].Renter.Name)
	assert.Equal(t, "Omar", view.AsRenter[0].Owner.Name)
	assert.Equal(t, "a.jpg", view.AsRenter[0].Tool.Image)
	assert.Equal(t, "b3", view.AsOwner[1].ID)
	users.AssertCalled(t, "GetByIDs", mock.Anything, []string{"renter", "owner"})
}

func TestBooking_DeletedToolResolvesToNil(t *testing.T) {
	users := new(MockUserRepository)
	tools := new(MockToolRepository)
	users.On("GetByIDs", mock.Anything, mock.Anything).Return([]models.User{}, nil)
	tools.On("GetByIDs", mock.Anything, mock.Anything).Return([]models.Tool{}, nil)
	r := &Resolver{Users: users, Tools: tools}

	view, err := r.Booking(context.Background(), &models.Booking{ID: "b1", ToolID: "gone", RenterID: "x", OwnerID: "y", Status: models.StatusCompleted})

	require.NoError(t, err)
	assert.Nil(t, view.Tool)
	assert.Equal(t, models.StatusCompleted, view.Status)
}

func TestConversations(t *testing.T) {
	r, _, _ := newResolver()
	latest := &models.Message{ID: "m1", Body: "hi"}
	threads := []messaging.Thread{{Booking: models.Booking{ID: "b1", ToolID: "t1", RenterID: "renter", OwnerID: "owner"}, Latest: latest, Unread: 2}}

	convs, err := r.Conversations(context.Background(), threads)

	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "b1", convs[0].Booking.ID)
	assert.Equal(t, latest, convs[0].LatestMessage)
	assert.Equal(t, int64(2), convs[0].UnreadCount)
}

func TestConversations_EmptyThreadRendersNullLatest(t *testing.T) {
	r, _, _ := newResolver()
	threads := []messaging.Thread{{Booking: models.Booking{ID: "b2", ToolID: "t1", RenterID: "renter", OwnerID: "owner"}}}

	convs, err := r.Conversations(context.Background(), threads)
	require.NoError(t, err)
	require.Len(t, convs, 1)

	raw, err := json.Marshal(convs[0])
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	value, present := decoded["latestMessage"]
	assert.True(t, present)
	assert.Nil(t, value)
	assert.Equal(t, float64(0), decoded["unreadCount"])
}

func TestReviews(t *testing.T) {
	r, _, _ := newResolver()

	views, err := r.Reviews(context.Background(), []models.Review{{ID: "r1", ReviewerID: "renter", Rating: 5}})

	require.NoError(t, err)
	assert.Equal(t, "Rita", views[0].Reviewer.Name)
	assert.Equal(t, 5, views[0].Rating)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, unique([]string{"a", "", "b", "a"}))
}
