package messageRepo

import (
	"context"

	"toolshare/models"
)

// MessageRepository defines methods for booking chat persistence.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// ListByBooking returns one page of a thread, oldest first.
	ListByBooking(ctx context.Context, bookingID string, skip, limit int64) ([]models.Message, error)
	CountByBooking(ctx context.Context, bookingID string) (int64, error)
	// Latest returns the newest message of a thread, or nil if it is empty.
	Latest(ctx context.Context, bookingID string) (*models.Message, error)
	// CountUnread counts messages in the thread addressed to userID and not yet read.
	CountUnread(ctx context.Context, bookingID, userID string) (int64, error)
	// MarkRead flags every message addressed to userID in the thread as read.
	MarkRead(ctx context.Context, bookingID, userID string) (int64, error)
}
