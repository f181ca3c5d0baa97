package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Shares разложение суммы бронирования между владельцем и платформой
type Shares struct {
	Gross         decimal.Decimal
	Refund        decimal.Decimal
	NetCollected  decimal.Decimal // может быть отрицательным, если возврат больше оплаты
	PlatformShare decimal.Decimal
	OwnerShare    decimal.Decimal
}

// ComputeShares считает доли по снимкам бронирования.
// Платформа забирает сбор, но не больше чистой суммы, и первой покрывает недостачу.
// Ни одна доля не уходит в минус.
func ComputeShares(totalPrice, refundAmount, serviceFee decimal.Decimal) Shares {
	net := totalPrice.Sub(refundAmount)

	platform := decimal.Min(serviceFee, net)
	if platform.IsNegative() {
		platform = decimal.Zero
	}

	owner := net.Sub(serviceFee)
	if owner.IsNegative() {
		owner = decimal.Zero
	}

	return Shares{
		Gross:         totalPrice,
		Refund:        refundAmount,
		NetCollected:  net,
		PlatformShare: platform,
		OwnerShare:    owner,
	}
}

// ReportFilter фильтр финансового отчёта, период по началу бронирования [From, To)
type ReportFilter struct {
	From    *time.Time
	To      *time.Time
	FieldID *int64
	ClubID  *int64
	OwnerID *int64
}

// LedgerEntry строка бронирования для финансового отчёта
type LedgerEntry struct {
	BookingID    int64
	FieldID      int64
	FieldName    string
	ClubID       *int64
	OwnerID      *int64
	Status       BookingStatus
	TotalPrice   decimal.Decimal
	RefundAmount decimal.Decimal
	ServiceFee   decimal.Decimal
	IsSettled    bool
}

// ReportTotals суммы по группе бронирований
type ReportTotals struct {
	BookingsCount       int
	NetCollected        decimal.Decimal
	PlatformShare       decimal.Decimal
	OwnerShare          decimal.Decimal
	OwnerShareSettled   decimal.Decimal
	OwnerShareUnsettled decimal.Decimal
}

// FieldReport суммы по одному полю
type FieldReport struct {
	FieldID   int64
	FieldName string
	ClubID    *int64
	OwnerID   *int64
	ReportTotals
}

// FinancialReport агрегированный отчёт
type FinancialReport struct {
	Filter ReportFilter
	Fields []FieldReport
	Totals ReportTotals
}

func (t *ReportTotals) add(e LedgerEntry) {
	shares := ComputeShares(e.TotalPrice, e.RefundAmount, e.ServiceFee)

	t.BookingsCount++
	t.NetCollected = t.NetCollected.Add(shares.NetCollected)
	t.PlatformShare = t.PlatformShare.Add(shares.PlatformShare)
	t.OwnerShare = t.OwnerShare.Add(shares.OwnerShare)
	if e.IsSettled {
		t.OwnerShareSettled = t.OwnerShareSettled.Add(shares.OwnerShare)
	} else {
		t.OwnerShareUnsettled = t.OwnerShareUnsettled.Add(shares.OwnerShare)
	}
}

// BuildFinancialReport группирует строки по полям.
// Учитываются только CONFIRMED и CANCELLED: по остальным деньги окончательно не двигались.
func BuildFinancialReport(filter ReportFilter, entries []LedgerEntry) *FinancialReport {
	report := &FinancialReport{
		Filter: filter,
		Fields: make([]FieldReport, 0),
	}

	byField := make(map[int64]*FieldReport)
	for _, e := range entries {
		if !e.Status.IsSettleable() {
			continue
		}

		row, ok := byField[e.FieldID]
		if !ok {
			row = &FieldReport{
				FieldID:   e.FieldID,
				FieldName: e.FieldName,
				ClubID:    e.ClubID,
				OwnerID:   e.OwnerID,
			}
			byField[e.FieldID] = row
		}

		row.add(e)
		report.Totals.add(e)
	}

	for _, row := range byField {
		report.Fields = append(report.Fields, *row)
	}
	sort.Slice(report.Fields, func(i, j int) bool {
		return report.Fields[i].FieldID < report.Fields[j].FieldID
	})

	return report
}
