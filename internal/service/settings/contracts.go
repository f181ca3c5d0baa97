package settings

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
)

// SettingsRepository интерфейс репозитория глобальных настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.GlobalSettings, error)
	Update(ctx context.Context, settings *domain.GlobalSettings) (*domain.GlobalSettings, error)
}

// SettingsCache интерфейс кеша настроек. Get возвращает (nil, nil) при промахе.
type SettingsCache interface {
	Get(ctx context.Context) (*domain.GlobalSettings, error)
	Set(ctx context.Context, settings *domain.GlobalSettings) error
	Invalidate(ctx context.Context) error
}

// Authorizer проверка прав
type Authorizer interface {
	IsAuthorized(actor domain.Actor, op access.Operation, res access.Resource) bool
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
