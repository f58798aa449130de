package notify

import (
	"context"

	"studio-booking/internal/data/entity"

	"go.uber.org/zap"
)

// LogNotifier only logs the confirmation. Used in development.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *LogNotifier) SendConfirmation(_ context.Context, booking *entity.Booking) error {
	n.log.Info("Booking confirmation",
		zap.String("booking_id", booking.ID.String()),
		zap.String("to", booking.Email),
		zap.String("service", booking.Service),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)
	return nil
}
