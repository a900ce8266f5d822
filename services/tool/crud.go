package tool

import (
	"context"
	"io"
	"strings"
	"time"

	"toolshare/models"
	"toolshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// applyInput copies the supplied fields onto t and validates the result.
func applyInput(t *models.Tool, in models.ToolInput) error {
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		t.Category = models.ToolCategory(*in.Category)
	}
	if in.Condition != nil {
		t.Condition = models.ToolCondition(*in.Condition)
	}
	if in.PriceHourly != nil {
		t.Price.Hourly = *in.PriceHourly
	}
	if in.PriceDaily != nil {
		t.Price.Daily = *in.PriceDaily
	}
	if in.Deposit != nil {
		t.Deposit = *in.Deposit
	}
	if in.IsAvailable != nil {
		t.Availability.IsAvailable = *in.IsAvailable
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return utils.NewValidationError("Both lat and lng are required to set a location")
	}
	if in.Lat != nil {
		if *in.Lat < -90 || *in.Lat > 90 || *in.Lng < -180 || *in.Lng > 180 {
			return utils.NewValidationError("Invalid coordinates")
		}
		t.Location = models.NewGeoPoint(*in.Lng, *in.Lat)
	}

	switch {
	case t.Title == "" || t.Description == "":
		return utils.NewValidationError("Title and description are required")
	case !t.Category.IsValid():
		return utils.NewValidationError("Invalid category")
	case !t.Condition.IsValid():
		return utils.NewValidationError("Invalid condition")
	case t.Price.Daily <= 0:
		return utils.NewValidationError("Daily price must be greater than 0")
	case t.Price.Hourly < 0:
		return utils.NewValidationError("Hourly price cannot be negative")
	case t.Deposit < 0:
		return utils.NewValidationError("Deposit cannot be negative")
	}
	return nil
}

func (s *DefaultToolService) uploadImages(ctx context.Context, files []io.Reader) ([]models.ImageRef, error) {
	if len(files) > MaxImages {
		return nil, utils.NewValidationError("A tool can have at most 5 images")
	}
	if len(files) == 0 {
		return nil, nil
	}
	if s.Storage == nil {
		return nil, utils.NewInternalError("image uploads are not configured", nil)
	}
	refs := make([]models.ImageRef, 0, len(files))
	for _, f := range files {
		img, err := s.Storage.UploadImage(ctx, f, "tools")
		if err != nil {
			s.deleteImages(ctx, idsOf(refs))
			return nil, utils.NewInternalError("failed to upload image", err)
		}
		refs = append(refs, *img)
	}
	return refs, nil
}

func (s *DefaultToolService) deleteImages(ctx context.Context, ids []string) {
	if s.Storage == nil {
		return
	}
	for _, id := range ids {
		if err := s.Storage.DeleteImage(ctx, id); err != nil {
			utils.GetLogger().Warn("failed to delete tool image", zap.String("publicId", id), zap.Error(err))
		}
	}
}

func idsOf(refs []models.ImageRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.PublicID)
	}
	return ids
}

func setImages(t *models.Tool, refs []models.ImageRef) {
	t.Images = make([]string, 0, len(refs))
	t.ImageIDs = make([]string, 0, len(refs))
	for _, r := range refs {
		t.Images = append(t.Images, r.URL)
		t.ImageIDs = append(t.ImageIDs, r.PublicID)
	}
}

func (s *DefaultToolService) CreateTool(ctx context.Context, ownerID string, in models.ToolInput, images []io.Reader) (*models.Tool, error) {
	now := time.Now().UTC()
	t := &models.Tool{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Category:  models.CategoryOther,
		Condition: models.ConditionGood,
		Images:    []string{},
		Availability: models.ToolAvailability{
			IsAvailable:      true,
			UnavailableDates: []models.DateRange{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyInput(t, in); err != nil {
		return nil, err
	}

	refs, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}
	setImages(t, refs)

	if err := s.Repo.Create(ctx, t); err != nil {
		s.deleteImages(ctx, t.ImageIDs)
		return nil, utils.NewInternalError("failed to create tool", err)
	}
	utils.GetLogger().Info("tool listed", zap.String("toolId", t.ID), zap.String("ownerId", ownerID))
	return t, nil
}

func (s *DefaultToolService) GetTool(ctx context.Context, id string) (*models.Tool, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternalError("failed to load tool", err)
	}
	if t == nil {
		return nil, utils.NewNotFoundError("Tool not found")
	}
	return t, nil
}

func (s *DefaultToolService) owned(ctx context.Context, id, ownerID string) (*models.Tool, error) {
	t, err := s.GetTool(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != ownerID {
		return nil, utils.NewAuthorizationError("Not authorized to modify this tool")
	}
	return t, nil
}

// UpdateTool applies the supplied fields. New images replace the previous set.
func (s *DefaultToolService) UpdateTool(ctx context.Context, id, ownerID string, in models.ToolInput, images []io.Reader) (*models.Tool, error) {
	t, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := applyInput(t, in); err != nil {
		return nil, err
	}

	var replaced []string
	if len(images) > 0 {
		refs, err := s.uploadImages(ctx, images)
		if err != nil {
			return nil, err
		}
		replaced = t.ImageIDs
		setImages(t, refs)
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Replace(ctx, t); err != nil {
		return nil, utils.NewInternalError("failed to update tool", err)
	}
	s.deleteImages(ctx, replaced)
	return t, nil
}

// DeleteTool removes the listing. Existing bookings keep their own snapshot.
func (s *DefaultToolService) DeleteTool(ctx context.Context, id, ownerID string) error {
	t, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return utils.NewInternalError("failed to delete tool", err)
	}
	s.deleteImages(ctx, t.ImageIDs)
	return nil
}

// SetBlackouts replaces the owner's unavailable periods.
func (s *DefaultToolService) SetBlackouts(ctx context.Context, id, ownerID string, req models.BlackoutRequest) (*models.Tool, error) {
	ranges := make([]models.DateRange, 0, len(req.UnavailableDates))
	for _, d := range req.UnavailableDates {
		from, err := utils.ParseDate(d.From)
		if err != nil {
			return nil, utils.NewValidationError("Invalid from date")
		}
		to, err := utils.ParseDate(d.To)
		if err != nil {
			return nil, utils.NewValidationError("Invalid to date")
		}
		if to.Before(from) {
			return nil, utils.NewValidationError("Blackout end must not be before its start")
		}
		ranges = append(ranges, models.DateRange{From: from, To: to})
	}

	t, err := s.owned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	t.Availability.UnavailableDates = ranges
	t.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Replace(ctx, t); err != nil {
		return nil, utils.NewInternalError("failed to update tool", err)
	}
	return t, nil
}
