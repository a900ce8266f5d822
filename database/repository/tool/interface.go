package toolRepo

import (
	"context"

	"toolshare/models"
)

// ToolRepository defines methods for tool listing data access.
type ToolRepository interface {
	Create(ctx context.Context, tool *models.Tool) error
	// GetByID returns nil, nil when the tool does not exist.
	GetByID(ctx context.Context, id string) (*models.Tool, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Tool, error)
	// Replace overwrites the stored document with tool.
	Replace(ctx context.Context, tool *models.Tool) error
	Delete(ctx context.Context, id string) error
	// ListByOwner returns the owner's tools, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Tool, error)
	// Search applies the public listing filters and returns one page plus the total match count.
	Search(ctx context.Context, criteria models.ToolSearchCriteria) ([]models.Tool, int64, error)
	UpdateRating(ctx context.Context, id string, stats models.RatingStats) error
}
