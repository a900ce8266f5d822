package user

import (
	"context"
	"io"

	userRepo "toolshare/database/repository/user"
	"toolshare/models"
	"toolshare/services/storage"

	"github.com/go-redis/redis/v8"
)

const minPasswordLength = 6

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error

	// Profile
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, req models.UpdatePasswordRequest) error
	UpdateAvatar(ctx context.Context, id string, file io.Reader) (*models.User, error)
}

// DefaultUserService is the production implementation.
// AuthCache holds revoked token hashes; Storage may be nil when no media host is configured.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
	Storage   storage.StorageService
}
