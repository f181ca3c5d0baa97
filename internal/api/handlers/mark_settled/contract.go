package mark_settled

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger/models"
)

type LedgerService interface {
	MarkSettled(ctx context.Context, req *models.MarkSettledRequest) (*models.MarkSettledResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
