package messaging

import (
	"context"

	bookingRepo "toolshare/database/repository/booking"
	messageRepo "toolshare/database/repository/message"
	"toolshare/models"
	"toolshare/services/realtime"
)

const (
	defaultPageSize = 50
)

// MessagingService handles the chat attached to each booking.
type MessagingService interface {
	Send(ctx context.Context, senderID string, req models.SendMessageRequest) (*models.Message, error)
	List(ctx context.Context, bookingID, requesterID string, page, limit int) (*models.MessagePage, error)
	Conversations(ctx context.Context, userID string) ([]Thread, error)
	MarkRead(ctx context.Context, bookingID, userID string) (int64, error)
}

// Thread is the raw material of an inbox entry. Resolvers expand the booking for display.
type Thread struct {
	Booking models.Booking
	Latest  *models.Message
	Unread  int64
}

// Pusher sends a device push to a user.
type Pusher interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

type DefaultMessagingService struct {
	Messages messageRepo.MessageRepository
	Bookings bookingRepo.BookingRepository
	Channel  realtime.NotificationChannel
	Pusher   Pusher
}
