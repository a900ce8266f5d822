package messaging

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"toolshare/models"
	"toolshare/services/realtime"
	"toolshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultMessagingService) participantBooking(ctx context.Context, bookingID, userID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Booking not found")
	}
	if !b.IsParticipant(userID) {
		return nil, utils.NewAuthorizationError("Not authorized to access this conversation")
	}
	return b, nil
}

// Send stores a message from one booking participant to the other and fans it out.
// Delivery failures never fail the send.
func (s *DefaultMessagingService) Send(ctx context.Context, senderID string, req models.SendMessageRequest) (*models.Message, error) {
	if req.BookingID == "" {
		return nil, utils.NewValidationError("Booking is required")
	}
	b, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, utils.NewInternalError("failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Booking not found")
	}
	body := req.Body
	if strings.TrimSpace(body) == "" {
		return nil, utils.NewValidationError("Message body is required")
	}
	if utf8.RuneCountInString(body) > models.MaxMessageLength {
		return nil, utils.NewValidationError("Message cannot exceed 1000 characters")
	}
	if !b.IsParticipant(senderID) {
		return nil, utils.NewAuthorizationError("Not authorized to message on this booking")
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		FromUserID: senderID,
		ToUserID:   b.Counterpart(senderID),
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, utils.NewInternalError("failed to save message", err)
	}

	logger := utils.GetLogger()
	if err := s.Bookings.Touch(ctx, b.ID); err != nil {
		logger.Warn("failed to touch booking", zap.String("bookingId", b.ID), zap.Error(err))
	}
	if s.Channel != nil {
		ev := realtime.Event{Type: realtime.EventNewMessage, Payload: msg}
		if err := s.Channel.Publish(ctx, realtime.BookingTopic(b.ID), ev); err != nil {
			logger.Warn("failed to publish message", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	if s.Pusher != nil {
		data := map[string]string{"type": "message", "bookingId": b.ID, "messageId": msg.ID}
		if err := s.Pusher.SendUserPushNotification(ctx, msg.ToUserID, "New message", preview(body), data); err != nil {
			logger.Warn("failed to push message", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return msg, nil
}

func preview(body string) string {
	const previewLen = 80
	if utf8.RuneCountInString(body) <= previewLen {
		return body
	}
	return string([]rune(body)[:previewLen]) + "…"
}

func (s *DefaultMessagingService) List(ctx context.Context, bookingID, requesterID string, page, limit int) (*models.MessagePage, error) {
	if _, err := s.participantBooking(ctx, bookingID, requesterID); err != nil {
		return nil, err
	}
	page, limit = models.NormalizePage(page, limit, defaultPageSize)

	total, err := s.Messages.CountByBooking(ctx, bookingID)
	if err != nil {
		return nil, utils.NewInternalError("failed to count messages", err)
	}
	msgs, err := s.Messages.ListByBooking(ctx, bookingID, models.Skip(page, limit), int64(limit))
	if err != nil {
		return nil, utils.NewInternalError("failed to list messages", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return &models.MessagePage{Messages: msgs, Pagination: models.NewPagination(page, limit, total)}, nil
}

// Conversations lists every booking the user takes part in. Latest is nil for bookings without messages.
func (s *DefaultMessagingService) Conversations(ctx context.Context, userID string) ([]Thread, error) {
	bookings, err := s.Bookings.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, utils.NewInternalError("failed to list bookings", err)
	}

	threads := make([]Thread, 0, len(bookings))
	for _, b := range bookings {
		latest, err := s.Messages.Latest(ctx, b.ID)
		if err != nil {
			return nil, utils.NewInternalError("failed to load latest message", err)
		}
		unread, err := s.Messages.CountUnread(ctx, b.ID, userID)
		if err != nil {
			return nil, utils.NewInternalError("failed to count unread messages", err)
		}
		threads = append(threads, Thread{Booking: b, Latest: latest, Unread: unread})
	}
	return threads, nil
}

func (s *DefaultMessagingService) MarkRead(ctx context.Context, bookingID, userID string) (int64, error) {
	if _, err := s.participantBooking(ctx, bookingID, userID); err != nil {
		return 0, err
	}
	n, err := s.Messages.MarkRead(ctx, bookingID, userID)
	if err != nil {
		return 0, utils.NewInternalError("failed to mark messages read", err)
	}
	return n, nil
}
