package check_availability

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// AvailabilityChecker проверка занятости интервалов поля
type AvailabilityChecker interface {
	Check(ctx context.Context, fieldID int64, intervals []domain.Interval) error
}

// SettingsProvider источник текущих глобальных настроек
type SettingsProvider interface {
	Current(ctx context.Context) (domain.GlobalSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
