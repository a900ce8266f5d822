package tool

import (
	"context"
	"io"

	toolRepo "toolshare/database/repository/tool"
	"toolshare/models"
	"toolshare/services/storage"
)

const (
	defaultPageSize = 10
	MaxImages       = 5
)

type ToolService interface {
	CreateTool(ctx context.Context, ownerID string, in models.ToolInput, images []io.Reader) (*models.Tool, error)
	GetTool(ctx context.Context, id string) (*models.Tool, error)
	UpdateTool(ctx context.Context, id, ownerID string, in models.ToolInput, images []io.Reader) (*models.Tool, error)
	DeleteTool(ctx context.Context, id, ownerID string) error
	SetBlackouts(ctx context.Context, id, ownerID string, req models.BlackoutRequest) (*models.Tool, error)

	Search(ctx context.Context, criteria models.ToolSearchCriteria) (*models.ToolPage, error)
	MyTools(ctx context.Context, ownerID string) ([]models.Tool, error)
	CheckAvailability(ctx context.Context, id, start, end string) (*models.AvailabilityResult, error)
}

// DefaultToolService is the production implementation. Storage may be nil, in which case
// listings are created without images.
type DefaultToolService struct {
	Repo    toolRepo.ToolRepository
	Storage storage.StorageService
}
