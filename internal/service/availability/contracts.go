package availability

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindOccupying(ctx context.Context, fieldID int64, intervals []domain.Interval) ([]*domain.Booking, error)
}

// Metrics счётчик найденных конфликтов
type Metrics interface {
	IncSlotConflict(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
