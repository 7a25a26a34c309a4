package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jack-WebDev/ahsa/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service and subscribes it to the
// auth events it emails about.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger) *NotificationService {
	n := &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
	if dispatcher != nil {
		dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
		dispatcher.Subscribe(events.EventOTPRequested, n.handleOTPRequested)
		dispatcher.Subscribe(events.EventPasswordReset, n.handlePasswordReset)
	}
	return n
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID))
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf("Hi %s, your account has been created successfully.", payload.Name)
	return n.mailer.Send(ctx, event.Email, "Welcome", body)
}

func (n *NotificationService) handleOTPRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("OTPRequested", zap.String("user_id", event.UserID))
	payload, ok := event.Payload.(events.OTPRequestedPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf("Hi %s, your verification code is %s. It expires shortly.", payload.Name, payload.Code)
	return n.mailer.Send(ctx, event.Email, "Password recovery code", body)
}

func (n *NotificationService) handlePasswordReset(ctx context.Context, event events.Event) error {
	n.logger.Info("PasswordReset", zap.String("user_id", event.UserID))
	payload, ok := event.Payload.(events.PasswordResetPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf("Hi %s, your password has been updated.", payload.Name)
	return n.mailer.Send(ctx, event.Email, "Password updated", body)
}
