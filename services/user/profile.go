package user

import (
	"context"
	"io"
	"strings"

	"toolshare/models"
	"toolshare/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, utils.NewNotFoundError("User not found")
	}
	return u, nil
}

func (s *DefaultUserService) update(ctx context.Context, id string, fields bson.M) (*models.User, error) {
	u, err := s.Repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, utils.NewInternalError("failed to update user", err)
	}
	if u == nil {
		return nil, utils.NewNotFoundError("User not found")
	}
	return u, nil
}

// UpdateProfile applies only the supplied fields. Location needs both coordinates.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error) {
	fields := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.NewValidationError("Name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		return nil, utils.NewValidationError("Both lat and lng are required to set a location")
	}
	if req.Lat != nil {
		if *req.Lat < -90 || *req.Lat > 90 || *req.Lng < -180 || *req.Lng > 180 {
			return nil, utils.NewValidationError("Invalid coordinates")
		}
		fields["location"] = models.NewGeoPoint(*req.Lng, *req.Lat)
	}
	if req.FCMToken != nil {
		fields["fcmToken"] = *req.FCMToken
	}
	if len(fields) == 0 {
		return s.GetUserByID(ctx, id)
	}
	return s.update(ctx, id, fields)
}

func (s *DefaultUserService) UpdatePassword(ctx context.Context, id string, req models.UpdatePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return utils.NewValidationError("Current and new password are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return utils.NewValidationError("Password must be at least 6 characters")
	}

	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return utils.NewAuthenticationError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewInternalError("failed to hash password", err)
	}
	_, err = s.update(ctx, id, bson.M{"passwordHash": string(hash)})
	return err
}

// UpdateAvatar uploads a new profile photo and removes the previous one from the media host.
func (s *DefaultUserService) UpdateAvatar(ctx context.Context, id string, file io.Reader) (*models.User, error) {
	if s.Storage == nil {
		return nil, utils.NewInternalError("image uploads are not configured", nil)
	}
	current, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	img, err := s.Storage.UploadImage(ctx, file, "avatars")
	if err != nil {
		return nil, utils.NewInternalError("failed to upload avatar", err)
	}
	u, err := s.update(ctx, id, bson.M{"avatar": img.URL, "avatarId": img.PublicID})
	if err != nil {
		return nil, err
	}

	if current.AvatarID != "" {
		if err := s.Storage.DeleteImage(ctx, current.AvatarID); err != nil {
			utils.GetLogger().Warn("failed to delete previous avatar", zap.String("userId", id), zap.Error(err))
		}
	}
	return u, nil
}
