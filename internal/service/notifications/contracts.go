package notifications

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Sink внешний получатель уведомлений (Kafka, webhook, лог)
type Sink interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Metrics счётчики отправки уведомлений
type Metrics interface {
	IncNotification(category, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
