package tool

import (
	"context"

	"toolshare/models"
	"toolshare/services/booking"
	"toolshare/utils"
)

func (s *DefaultToolService) Search(ctx context.Context, c models.ToolSearchCriteria) (*models.ToolPage, error) {
	c.Page, c.Limit = models.NormalizePage(c.Page, c.Limit, defaultPageSize)
	if (c.Lat == nil) != (c.Lng == nil) {
		return nil, utils.NewValidationError("Both lat and lng are required for a location search")
	}
	tools, total, err := s.Repo.Search(ctx, c)
	if err != nil {
		return nil, utils.NewInternalError("failed to search tools", err)
	}
	return &models.ToolPage{Tools: tools, Pagination: models.NewPagination(c.Page, c.Limit, total)}, nil
}

func (s *DefaultToolService) MyTools(ctx context.Context, ownerID string) ([]models.Tool, error) {
	tools, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.NewInternalError("failed to list tools", err)
	}
	return tools, nil
}

// CheckAvailability answers the public availability query for a date range.
func (s *DefaultToolService) CheckAvailability(ctx context.Context, id, start, end string) (*models.AvailabilityResult, error) {
	if start == "" || end == "" {
		return nil, utils.NewValidationError("Start and end dates are required")
	}
	from, err := utils.ParseDate(start)
	if err != nil {
		return nil, utils.NewValidationError("Invalid start date")
	}
	to, err := utils.ParseDate(end)
	if err != nil {
		return nil, utils.NewValidationError("Invalid end date")
	}
	t, err := s.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}
	result := booking.CheckAvailability(t, from, to)
	return &result, nil
}
