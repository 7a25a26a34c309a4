package service

import (
	"context"

	"go.uber.org/zap"
)

// Mailer abstracts outbound email delivery. The actual transport lives
// outside this service; LogMailer stands in for development.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes outbound mail to the log instead of delivering it.
type LogMailer struct {
	from   string
	logger *zap.Logger
}

// NewLogMailer constructs a logging mailer.
func NewLogMailer(from string, logger *zap.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("outbound email",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
