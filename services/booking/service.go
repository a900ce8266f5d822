package booking

import (
	"context"
	"errors"
	"fmt"

	"toolshare/database"
	"toolshare/models"
	"toolshare/services/realtime"
	"toolshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, renterID string, req models.CreateBookingRequest) (*models.Booking, error) {
	if req.ToolID == "" || req.Start == "" || req.End == "" {
		return nil, utils.NewValidationError("Tool, start date and end date are required")
	}
	start, err := utils.ParseDate(req.Start)
	if err != nil {
		return nil, utils.NewValidationError("Invalid start date")
	}
	end, err := utils.ParseDate(req.End)
	if err != nil {
		return nil, utils.NewValidationError("Invalid end date")
	}
	if !end.After(start) {
		return nil, utils.NewValidationError("End date must be after start date")
	}
	now := s.now()
	if start.Before(now) {
		return nil, utils.NewValidationError("Start date cannot be in the past")
	}

	tool, err := s.Tools.GetByID(ctx, req.ToolID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load tool", err)
	}
	if tool == nil {
		return nil, utils.NewNotFoundError("Tool not found")
	}
	if tool.OwnerID == renterID {
		return nil, utils.NewAuthorizationError("You cannot book your own tool")
	}
	if result := CheckAvailability(tool, start, end); !result.Available {
		return nil, utils.NewConflictError(result.Reason)
	}

	b := &models.Booking{
		ID:        uuid.New().String(),
		ToolID:    tool.ID,
		RenterID:  renterID,
		OwnerID:   tool.OwnerID,
		Start:     start,
		End:       end,
		Pricing:   PricingSnapshot(tool, start, end),
		Deposit:   tool.Deposit,
		Status:    models.StatusPending,
		History:   []models.StatusChange{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, utils.NewInternalError("failed to create booking", err)
	}

	s.notify(ctx, b.OwnerID, "New booking request",
		fmt.Sprintf("%s was requested for %d day(s)", tool.Title, DayCount(start, end)), b)
	return b, nil
}

func (s *DefaultBookingService) load(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternalError("failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Booking not found")
	}
	return b, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id, requesterID string) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParticipant(requesterID) {
		return nil, utils.NewAuthorizationError("Not authorized to view this booking")
	}
	return b, nil
}

func (s *DefaultBookingService) MyBookings(ctx context.Context, userID string) ([]models.Booking, []models.Booking, error) {
	asRenter, err := s.Bookings.ListByRenter(ctx, userID)
	if err != nil {
		return nil, nil, utils.NewInternalError("failed to list bookings", err)
	}
	asOwner, err := s.Bookings.ListByOwner(ctx, userID)
	if err != nil {
		return nil, nil, utils.NewInternalError("failed to list bookings", err)
	}
	return asRenter, asOwner, nil
}

// transition re-fetches the booking, fires ev and persists the result under the version it was read at.
// beforeSave runs after the state check and may attach side data such as payment details.
func (s *DefaultBookingService) transition(ctx context.Context, id, actorID string, ev Event, role func(*models.Booking) ActorRole, beforeSave func(*models.Booking) error) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsParticipant(actorID) && actorID != string(ActorSystem) {
		return nil, utils.NewAuthorizationError("Not authorized to update this booking")
	}

	expected := b.Version
	if err := Apply(b, ev, role(b), actorID, s.now()); err != nil {
		return nil, err
	}
	if beforeSave != nil {
		if err := beforeSave(b); err != nil {
			return nil, err
		}
	}

	if err := s.Bookings.SaveTransition(ctx, b, expected); err != nil {
		if errors.Is(err, database.ErrVersionConflict) {
			return nil, utils.NewConcurrencyError("Booking was modified by another request, please retry")
		}
		return nil, utils.NewInternalError("failed to update booking", err)
	}

	utils.GetLogger().Info("booking transition",
		zap.String("bookingId", b.ID),
		zap.String("event", string(ev)),
		zap.String("status", string(b.Status)),
		zap.String("actorId", actorID))
	s.publishStatus(ctx, b)
	return b, nil
}

// publishStatus tells live clients about the new status. Errors are logged only.
func (s *DefaultBookingService) publishStatus(ctx context.Context, b *models.Booking) {
	if s.Channel == nil {
		return
	}
	ev := realtime.Event{
		Type: realtime.EventBookingStatus,
		Payload: map[string]any{
			"bookingId": b.ID,
			"status":    b.Status,
			"version":   b.Version,
			"updatedAt": b.UpdatedAt,
		},
	}
	if err := s.Channel.Publish(ctx, realtime.BookingTopic(b.ID), ev); err != nil {
		utils.GetLogger().Warn("booking status publish failed", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func participantRole(actorID string) func(*models.Booking) ActorRole {
	return func(b *models.Booking) ActorRole { return RoleOf(b, actorID) }
}

func (s *DefaultBookingService) Approve(ctx context.Context, id, actorID string) (*models.Booking, error) {
	b, err := s.transition(ctx, id, actorID, EventApprove, participantRole(actorID), func(b *models.Booking) error {
		if s.Payments == nil {
			return nil
		}
		amount := b.Pricing.Total
		if s.ChargeDeposit {
			amount += b.Deposit
		}
		intent, err := s.Payments.CreateIntent(ctx, b, ToMinorUnits(amount))
		if err != nil {
			return utils.NewInternalError("failed to create payment intent", err)
		}
		b.PaymentIntentID = intent.ID
		b.ClientSecret = intent.ClientSecret
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.RenterID, "Booking approved", "Your booking was approved. Complete the payment to start the rental.", b)
	return b, nil
}

func (s *DefaultBookingService) Decline(ctx context.Context, id, actorID string) (*models.Booking, error) {
	b, err := s.transition(ctx, id, actorID, EventDecline, participantRole(actorID), nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.RenterID, "Booking declined", "The owner declined your booking request.", b)
	return b, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, id, actorID string) (*models.Booking, error) {
	b, err := s.transition(ctx, id, actorID, EventCancel, participantRole(actorID), nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.Counterpart(actorID), "Booking cancelled", "A booking you are part of was cancelled.", b)
	return b, nil
}

func (s *DefaultBookingService) MarkReturned(ctx context.Context, id, actorID string) (*models.Booking, error) {
	b, err := s.transition(ctx, id, actorID, EventReturn, participantRole(actorID), nil)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, b.RenterID, "Rental completed", "The owner marked the tool as returned. You can now leave a review.", b)
	return b, nil
}

// notify sends a best-effort push. Errors are logged only.
func (s *DefaultBookingService) notify(ctx context.Context, userID, title, body string, b *models.Booking) {
	if s.Notifier == nil || userID == "" {
		return
	}
	data := map[string]string{
		"type":      "booking",
		"bookingId": b.ID,
		"status":    string(b.Status),
	}
	if err := s.Notifier.SendUserPushNotification(ctx, userID, title, body, data); err != nil {
		utils.GetLogger().Warn("booking notification failed",
			zap.String("bookingId", b.ID),
			zap.String("userId", userID),
			zap.Error(err))
	}
}
