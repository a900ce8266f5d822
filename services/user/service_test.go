package user

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"toolshare/config"
	"toolshare/database"
	"toolshare/models"
	"toolshare/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
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

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, file io.Reader, folder string) (*models.ImageRef, error) {
	args := m.Called(ctx, file, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImageRef), args.Error(1)
}

func (m *MockStorage) DeleteImage(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func setupTokens(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig.JWTSecret = "access-secret"
	config.AppConfig.JWTRefreshSecret = "refresh-secret"
	config.AppConfig.AccessTokenTTL = time.Hour
	config.AppConfig.RefreshTokenTTL = time.Hour
	t.Cleanup(func() { config.AppConfig = prev })
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	setupTokens(t)
	repo := new(MockUserRepository)
	svc := &DefaultUserService{Repo: repo}
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	res, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Ana", Email: " Ana@Example.com ", Password: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.Equal(t, models.DefaultAvatar, res.User.Avatar)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret1")))

	claims, err := utils.ParseAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	_, err = utils.ParseAccessToken(res.RefreshToken)
	assert.Error(t, err)
}

func TestRegister_Rejections(t *testing.T) {
	setupTokens(t)
	repo := new(MockUserRepository)
	svc := &DefaultUserService{Repo: repo}
	repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: "u1"}, nil)
	repo.On("GetByEmail", mock.Anything, "race@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(database.ErrDuplicateKey)

	cases := []models.RegisterRequest{
		{Email: "a@example.com", Password: "secret1"},
		{Name: "A", Password: "secret1"},
		{Name: "A", Email: "a@example.com", Password: "short"},
		{Name: "A", Email: "taken@example.com", Password: "secret1"},
		{Name: "A", Email: "race@example.com", Password: "secret1"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.True(t, utils.IsKind(err, utils.KindValidation), "request %+v", req)
	}
}

func TestLogin(t *testing.T) {
	setupTokens(t)
	repo := new(MockUserRepository)
	svc := &DefaultUserService{Repo: repo}
	u := &models.User{ID: "u1", Email: "ana@example.com", PasswordHash: hashed(t, "secret1"), Role: models.RoleUser}
	repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
}

func TestRefresh(t *testing.T) {
	setupTokens(t)
	repo := new(MockUserRepository)
	svc := &DefaultUserService{Repo: repo}
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)

	refresh, err := utils.GenerateRefreshToken("u1")
	require.NoError(t, err)
	res, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	access, err := utils.GenerateAccessToken("u1", "user")
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background(), access)
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))
}

func TestLogout_WithoutCacheIsNoop(t *testing.T) {
	setupTokens(t)
	svc := &DefaultUserService{Repo: new(MockUserRepository)}

	access, err := utils.GenerateAccessToken("u1", "user")
	require.NoError(t, err)
	assert.NoError(t, svc.Logout(context.Background(), access))
	assert.True(t, utils.IsKind(svc.Logout(context.Background(), "garbage"), utils.KindAuthentication))
}

func TestUpdateProfile(t *testing.T) {
	repo := new(MockUserRepository)
	svc := &DefaultUserService{Repo: repo}
	lat, lng := -1.28, 36.82
	name := "  Ana B "
	repo.On("UpdateFields", mock.Anything, "u1", bson.M{
		"name":     "Ana B",
		"location": models.NewGeoPoint(lng, lat),
	}).Return(&models.User{ID: "u1", Name: "Ana B"}, nil)

	u, err := svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{Name: &name, Lat: &lat, Lng: &lng})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", u.Name)

	_, err = svc.UpdateProfile(context.Background(), "u1", models.UpdateProfileRequest{Lat: &lat})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestUpdatePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := &DefaultUserService{Repo: repo}
	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", PasswordHash: hashed(t, "secret1")}, nil)
	repo.On("UpdateFields", mock.Anything, "u1", mock.MatchedBy(func(f bson.M) bool {
		h, ok := f["passwordHash"].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(h), []byte("secret2")) == nil
	})).Return(&models.User{ID: "u1"}, nil)

	err := svc.UpdatePassword(context.Background(), "u1", models.UpdatePasswordRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.True(t, utils.IsKind(err, utils.KindAuthentication))

	err = svc.UpdatePassword(context.Background(), "u1", models.UpdatePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"})
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "UpdateFields", 1)
}

func TestUpdateAvatar_ReplacesPreviousImage(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockStorage)
	svc := &DefaultUserService{Repo: repo, Storage: store}
	file := bytes.NewBufferString("png")

	repo.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", AvatarID: "old"}, nil)
	store.On("UploadImage", mock.Anything, file, "avatars").Return(&models.ImageRef{URL: "https://img/new", PublicID: "new"}, nil)
	repo.On("UpdateFields", mock.Anything, "u1", bson.M{"avatar": "https://img/new", "avatarId": "new"}).
		Return(&models.User{ID: "u1", Avatar: "https://img/new"}, nil)
	store.On("DeleteImage", mock.Anything, "old").Return(nil)

	u, err := svc.UpdateAvatar(context.Background(), "u1", file)

	require.NoError(t, err)
	assert.Equal(t, "https://img/new", u.Avatar)
	store.AssertExpectations(t)
}
