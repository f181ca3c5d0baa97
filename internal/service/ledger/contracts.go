package ledger

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
)

// LedgerRepository операции с бронированиями, нужные для расчётов
type LedgerRepository interface {
	ListForReport(ctx context.Context, filter domain.ReportFilter) ([]domain.LedgerEntry, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
	CountSettleable(ctx context.Context, ids []int64) (int, error)
	MarkSettled(ctx context.Context, ids []int64) (int64, error)
}

// Authorizer проверка прав
type Authorizer interface {
	IsAuthorized(actor domain.Actor, op access.Operation, res access.Resource) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики расчётов
type Metrics interface {
	IncBookingsSettled(n int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
