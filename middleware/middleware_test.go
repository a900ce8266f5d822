package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"toolshare/config"
	"toolshare/models"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
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

func setupSecrets(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig.JWTSecret = "access-secret"
	config.AppConfig.JWTRefreshSecret = "refresh-secret"
	config.AppConfig.AccessTokenTTL = time.Hour
	config.AppConfig.RefreshTokenTTL = time.Hour
	t.Cleanup(func() { config.AppConfig = prev })
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})
	r.GET("/protected", chain...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthUserMiddleware(t *testing.T) {
	setupSecrets(t)
	r := protectedRouter(JWTAuthUserMiddleware(nil))

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "not-a-jwt").Code)

	refresh, err := utils.GenerateRefreshToken("u1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, refresh).Code)

	access, err := utils.GenerateAccessToken("u1", "user")
	require.NoError(t, err)
	w := get(r, access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestAdminOnlyMiddleware(t *testing.T) {
	setupSecrets(t)
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, "admin").Return(&models.User{ID: "admin", Role: models.RoleAdmin}, nil)
	users.On("GetByID", mock.Anything, "plain").Return(&models.User{ID: "plain", Role: models.RoleUser}, nil)
	r := protectedRouter(JWTAuthUserMiddleware(nil), AdminOnlyMiddleware(users, nil))

	// The role claim alone does not grant access.
	forged, err := utils.GenerateAccessToken("plain", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, forged).Code)

	admin, err := utils.GenerateAccessToken("admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, admin).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := protectedRouter(RateLimitMiddleware(2))

	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusOK, get(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "").Code)
}

func TestRateLimiterStore_EvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(1)
	store.now = func() time.Time { return now }

	assert.True(t, store.allow("10.0.0.1"))
	assert.False(t, store.allow("10.0.0.1"))

	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, store.allow("10.0.0.2"))
	_, kept := store.clients["10.0.0.1"]
	assert.False(t, kept)
}

func TestRequestLogger_SetsContextLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	var requestID string
	r.GET("/ping", func(c *gin.Context) {
		_, ok := c.Get(ContextLogger)
		assert.True(t, ok)
		requestID = c.GetString(ContextRequestID)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, w.Header().Get("X-Request-ID"))
}
