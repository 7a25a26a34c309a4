package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jack-WebDev/ahsa/internal/events"
	"github.com/Jack-WebDev/ahsa/internal/service"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type captureMailer struct {
	sent []sentMail
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestNotificationServiceSubscribesOnConstruction(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	mailer := &captureMailer{}
	service.NewNotificationService(dispatcher, mailer, zap.NewNop())

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventOTPRequested,
		UserID:    "user-1",
		Email:     "jack@example.com",
		Timestamp: time.Now(),
		Payload:   events.OTPRequestedPayload{Name: "Jack", Code: "123456"},
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jack@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "123456")
}

func TestNotificationServiceSendsWelcomeMail(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	mailer := &captureMailer{}
	service.NewNotificationService(dispatcher, mailer, zap.NewNop())

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventUserRegistered,
		UserID:    "user-1",
		Email:     "jack@example.com",
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Name: "Jack", Surname: "Mokoena"},
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Welcome", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "Jack")
}
