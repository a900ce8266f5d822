package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"toolshare/database"
	"toolshare/models"
	"toolshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func issueTokens(u *models.User) (*models.AuthResponse, error) {
	access, err := utils.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, utils.NewInternalError("failed to generate token", err)
	}
	refresh, err := utils.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, utils.NewInternalError("failed to generate token", err)
	}
	return &models.AuthResponse{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, utils.NewValidationError("Name, email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.NewValidationError("Password must be at least 6 characters")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewInternalError("failed to check for existing user", err)
	}
	if existing != nil {
		return nil, utils.NewValidationError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Address:      req.Address,
		Avatar:       models.DefaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, utils.NewValidationError("User already exists")
		}
		return nil, utils.NewInternalError("failed to create user", err)
	}

	utils.GetLogger().Info("user registered", zap.String("userId", u.ID))
	return issueTokens(u)
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, utils.NewValidationError("Email and password are required")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewInternalError("failed to load user", err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.NewAuthenticationError("Invalid credentials")
	}
	return issueTokens(u)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *DefaultUserService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	if refreshToken == "" {
		return nil, utils.NewValidationError("Refresh token is required")
	}
	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.NewAuthenticationError("Invalid refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, utils.NewAuthenticationError("Invalid refresh token")
	}
	return issueTokens(u)
}

// Logout revokes the access token until it would have expired anyway.
func (s *DefaultUserService) Logout(ctx context.Context, accessToken string) error {
	claims, err := utils.ParseAccessToken(accessToken)
	if err != nil {
		return utils.NewAuthenticationError("Invalid token")
	}
	ttl := claims.RemainingTTL()
	if ttl <= 0 || s.AuthCache == nil {
		return nil
	}
	key := utils.RevokedTokenPrefix + utils.HashToken(accessToken)
	if err := s.AuthCache.Set(ctx, key, claims.UserID, ttl).Err(); err != nil {
		return utils.NewInternalError("failed to revoke token", err)
	}
	return nil
}
