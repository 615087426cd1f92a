package notification

import (
	"context"

	"nyumbani/services/user"
	"nyumbani/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService delivers push notifications for booking and payment
// events. Delivery is best effort; a failed push never fails the request
// that triggered it.
type NotificationService interface {
	NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultNotificationService sends via FCM.
type DefaultNotificationService struct {
	Users user.UserService
}

// NotifyUser pushes to the user's registered device, if any.
func (s *DefaultNotificationService) NotifyUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	logger := utils.GetLogger()

	if utils.FCMClient == nil {
		logger.Debug("push skipped, FCM not configured", zap.String("userID", userID))
		return nil
	}

	u, err := s.Users.GetUserByID(userID)
	if err != nil {
		return err
	}
	if u.FCMToken == "" {
		logger.Debug("push skipped, user has no device token", zap.String("userID", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		logger.Warn("push delivery failed", zap.String("userID", userID), zap.Error(err))
		return err
	}
	return nil
}
