package transition_booking

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ApplyTransition(ctx context.Context, change domain.StatusChange) error
}

// FieldRepository интерфейс репозитория полей
type FieldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Field, error)
}

// Authorizer проверка прав
type Authorizer interface {
	IsAuthorized(actor domain.Actor, op access.Operation, res access.Resource) bool
}

// Notifier рассылка уведомлений, не возвращает ошибок
type Notifier interface {
	Dispatch(ctx context.Context, notes []domain.Notification)
}

// Metrics счётчик переходов статусов
type Metrics interface {
	IncStatusTransition(action string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
