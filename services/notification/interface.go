package notification

import (
	"context"

	userRepo "toolshare/database/repository/user"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService reaches a user outside the app.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// PushSender is satisfied by *messaging.Client.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Mailer delivers a plain-text email.
type Mailer interface {
	SendEmail(ctx context.Context, toEmail, toName, subject, text string) error
}

// DefaultNotificationService pushes through FCM and mirrors booking events by email.
// Either channel may be nil.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
	Push  PushSender
	Mail  Mailer
}
