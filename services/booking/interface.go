package booking

import (
	"context"
	"time"

	bookingRepo "toolshare/database/repository/booking"
	toolRepo "toolshare/database/repository/tool"
	"toolshare/models"
	"toolshare/services/realtime"
)

// BookingService drives the booking lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, renterID string, req models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id, requesterID string) (*models.Booking, error)
	MyBookings(ctx context.Context, userID string) (asRenter, asOwner []models.Booking, err error)

	Approve(ctx context.Context, id, actorID string) (*models.Booking, error)
	Decline(ctx context.Context, id, actorID string) (*models.Booking, error)
	Cancel(ctx context.Context, id, actorID string) (*models.Booking, error)
	MarkReturned(ctx context.Context, id, actorID string) (*models.Booking, error)

	GetPaymentDetails(ctx context.Context, id, renterID string) (*models.PaymentDetails, error)
	ConfirmPayment(ctx context.Context, id, renterID string) (*models.Booking, error)
	ReconcilePayments(ctx context.Context) (int, error)
}

// Notifier delivers push notifications to a user. Failures never affect the booking.
type Notifier interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultBookingService is the production implementation.
// Payments may be nil, in which case payment is settled offline and confirmed by the renter.
// Channel, when set, receives a bookingStatus event after every transition.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingRepository
	Tools         toolRepo.ToolRepository
	Payments      PaymentGateway
	Notifier      Notifier
	Channel       realtime.NotificationChannel
	Currency      string
	ChargeDeposit bool
	Now           func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
