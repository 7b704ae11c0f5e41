package otp

import (
	"context"

	"doseup-parent/internal/platform/logger"
)

// LogSender "manda" el SMS al log. Solo para desarrollo: el código queda legible.
type LogSender struct {
	Log logger.Logger
}

func (s LogSender) Send(_ context.Context, phone, message string) error {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}
	log.Info("sms (dev)", map[string]any{
		"phone":   phone,
		"message": message,
	})
	return nil
}
