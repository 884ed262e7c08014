package sms

import (
	"context"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of a vendor. Used in test
// mode and local development.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.log.Info("sms (test mode)", zap.String("to", to), zap.String("body", body))
	return nil
}

var _ Sender = (*LogSender)(nil)
