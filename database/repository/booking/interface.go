package bookingRepo

import (
	"context"

	"toolshare/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID returns nil, nil when the booking does not exist.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByRenter returns bookings made by the user, newest first.
	ListByRenter(ctx context.Context, renterID string) ([]models.Booking, error)
	// ListByOwner returns bookings of the user's tools, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error)
	// ListByParticipant returns bookings where the user is either side, most recently updated first.
	ListByParticipant(ctx context.Context, userID string) ([]models.Booking, error)
	// ListAwaitingPayment returns approved bookings that carry a payment intent.
	ListAwaitingPayment(ctx context.Context) ([]models.Booking, error)
	// SaveTransition persists status, history and payment fields if the stored version
	// still equals expectedVersion, then bumps the version. A stale version yields
	// database.ErrVersionConflict.
	SaveTransition(ctx context.Context, booking *models.Booking, expectedVersion int) error
	// Touch bumps updatedAt so the conversation list reflects new activity.
	Touch(ctx context.Context, id string) error
}
