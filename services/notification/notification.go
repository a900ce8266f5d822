package notification

import (
	"context"
	"errors"
	"fmt"

	"toolshare/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// emailTypes lists the data types that are also sent by email.
var emailTypes = map[string]bool{"booking": true}

// SendUserPushNotification looks up the user's FCM token and sends a push.
// Users without a token are skipped silently.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not load user %s: %w", userID, err)
	}
	if u == nil {
		return fmt.Errorf("SendUserPushNotification: user %s not found", userID)
	}

	var errs []error
	if s.Push != nil && u.FCMToken != "" {
		msg := &messaging.Message{
			Token: u.FCMToken,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority",
					Sound:     "default",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{"apns-priority": "10"},
				Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
			},
		}
		if id, err := s.Push.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("failed to send FCM message: %w", err))
		} else {
			utils.GetLogger().Debug("push sent", zap.String("userId", userID), zap.String("messageId", id))
		}
	}

	if s.Mail != nil && u.Email != "" && emailTypes[data["type"]] {
		if err := s.Mail.SendEmail(ctx, u.Email, u.Name, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
