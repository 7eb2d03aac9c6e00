package email

import (
	"context"
	"log/slog"
)

// LogSender is a Sender that writes the email to the logger instead of
// sending it. Not meant for production use: it logs recipient addresses
// and full message contents.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{
		logger: logger.With(slog.String("component", "email_log_sender")),
	}
}

var _ Sender = (*LogSender)(nil)

// Send logs the email to the logger.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("send email",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
