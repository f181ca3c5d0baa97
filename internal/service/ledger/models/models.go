package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модели

// ReportRequest запрос финансового отчёта
type ReportRequest struct {
	Actor   domain.Actor
	From    *time.Time
	To      *time.Time
	FieldID *int64
	ClubID  *int64
	OwnerID *int64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ReportRequest) ToDomainFilter() domain.ReportFilter {
	return domain.ReportFilter{
		From:    r.From,
		To:      r.To,
		FieldID: r.FieldID,
		ClubID:  r.ClubID,
		OwnerID: r.OwnerID,
	}
}

// MarkSettledRequest запрос отметки выплаты владельцам
type MarkSettledRequest struct {
	Actor      domain.Actor
	BookingIDs []int64 `json:"bookingIds"`
}

// Response модели

// TotalsResponse суммы по группе бронирований
type TotalsResponse struct {
	BookingsCount       int             `json:"bookingsCount"`
	NetCollected        decimal.Decimal `json:"netCollected"`
	PlatformShare       decimal.Decimal `json:"platformShare"`
	OwnerShare          decimal.Decimal `json:"ownerShare"`
	OwnerShareSettled   decimal.Decimal `json:"ownerShareSettled"`
	OwnerShareUnsettled decimal.Decimal `json:"ownerShareUnsettled"`
}

// FieldReportResponse строка отчёта по полю
type FieldReportResponse struct {
	FieldID   int64  `json:"fieldId"`
	FieldName string `json:"fieldName"`
	ClubID    *int64 `json:"clubId,omitempty"`
	OwnerID   *int64 `json:"ownerId,omitempty"`
	TotalsResponse
}

// FinancialReportResponse финансовый отчёт
type FinancialReportResponse struct {
	From   *time.Time            `json:"from,omitempty"`
	To     *time.Time            `json:"to,omitempty"`
	Fields []FieldReportResponse `json:"fields"`
	Totals TotalsResponse        `json:"totals"`
}

// MarkSettledResponse результат отметки выплаты
type MarkSettledResponse struct {
	Updated int64 `json:"updated"`
}

// Методы конвертации

func fromDomainTotals(t domain.ReportTotals) TotalsResponse {
	return TotalsResponse{
		BookingsCount:       t.BookingsCount,
		NetCollected:        t.NetCollected,
		PlatformShare:       t.PlatformShare,
		OwnerShare:          t.OwnerShare,
		OwnerShareSettled:   t.OwnerShareSettled,
		OwnerShareUnsettled: t.OwnerShareUnsettled,
	}
}

// FromDomainReport конвертирует domain отчёт в DTO
func FromDomainReport(r *domain.FinancialReport) *FinancialReportResponse {
	if r == nil {
		return nil
	}

	resp := &FinancialReportResponse{
		From:   r.Filter.From,
		To:     r.Filter.To,
		Fields: make([]FieldReportResponse, 0, len(r.Fields)),
		Totals: fromDomainTotals(r.Totals),
	}

	for _, f := range r.Fields {
		resp.Fields = append(resp.Fields, FieldReportResponse{
			FieldID:        f.FieldID,
			FieldName:      f.FieldName,
			ClubID:         f.ClubID,
			OwnerID:        f.OwnerID,
			TotalsResponse: fromDomainTotals(f.ReportTotals),
		})
	}

	return resp
}
