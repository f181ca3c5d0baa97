package notifier

import (
	"context"
	"strconv"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// LogSink пишет уведомления в лог, когда внешний нотификатор не настроен
type LogSink struct {
	log Logger
}

func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, n domain.Notification) error {
	recipient := "admins"
	if n.UserID != nil {
		recipient = "user=" + formatID(*n.UserID)
	}
	s.log.Info("Notification [%s] booking=%d to %s: %s - %s", n.Category, n.BookingID, recipient, n.Title, n.Message)
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
