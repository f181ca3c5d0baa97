package create_booking

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Field, error)
}

// AvailabilityChecker проверка занятости интервалов поля
type AvailabilityChecker interface {
	Check(ctx context.Context, fieldID int64, intervals []domain.Interval) error
	Conflicts(ctx context.Context, fieldID int64, intervals []domain.Interval) ([]bool, error)
}

// SettingsProvider источник текущих глобальных настроек
type SettingsProvider interface {
	Current(ctx context.Context) (domain.GlobalSettings, error)
}

// Authorizer проверка прав
type Authorizer interface {
	IsAuthorized(actor domain.Actor, op access.Operation, res access.Resource) bool
}

// Notifier рассылка уведомлений, не возвращает ошибок
type Notifier interface {
	Dispatch(ctx context.Context, notes []domain.Notification)
}

// Metrics счётчики создания бронирований
type Metrics interface {
	IncBookingsCreated(kind string, n int)
	IncRecurringSkipped(n int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
