package userRepo

import (
	"context"

	"toolshare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record. A taken email yields database.ErrDuplicateKey.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves every user whose ID is listed. Missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// UpdateFields applies a $set and returns the updated record, or nil if the user is gone.
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.User, error)
	// UpdateRating stores the recomputed rating aggregate.
	UpdateRating(ctx context.Context, id string, stats models.RatingStats) error
}
