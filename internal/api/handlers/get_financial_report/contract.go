package get_financial_report

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger/models"
)

type LedgerService interface {
	Report(ctx context.Context, req *models.ReportRequest) (*models.FinancialReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
