package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusRejected        BookingStatus = "rejected"
	StatusCancelRequested BookingStatus = "cancel_requested"
	StatusCancelled       BookingStatus = "cancelled"
	StatusBlocked         BookingStatus = "blocked"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelRequested, StatusCancelled, StatusBlocked:
		return true
	}
	return false
}

// IsOccupying returns true if the status reserves its interval on the field
func (s BookingStatus) IsOccupying() bool {
	for _, o := range OccupyingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// IsSettleable returns true if money for the booking has definitively moved
func (s BookingStatus) IsSettleable() bool {
	for _, o := range SettleableStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// Booking represents a field time-slot booking
type Booking struct {
	ID        int64
	FieldID   int64
	UserID    int64
	StartTime time.Time // UTC
	EndTime   time.Time // UTC
	Status    BookingStatus

	// Снимки на момент создания, не пересчитываются
	TotalPrice   decimal.Decimal
	ServiceFee   decimal.Decimal
	RefundAmount decimal.Decimal
	IsSettled    bool

	CancellationReason    *string
	CancellationAdminNote *string
	ReceiptRef            *string
	SeriesID              uuid.NullUUID // общий для всех недель повторяющегося бронирования

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsOccupying returns true if the booking blocks its interval
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// Shares returns the ledger decomposition of the booking
func (b *Booking) Shares() Shares {
	return ComputeShares(b.TotalPrice, b.RefundAmount, b.ServiceFee)
}

// HasMoneyTrail returns true if deleting the booking would destroy settlement history.
// The settled flag counts only for statuses where an owner share has accrued.
func (b *Booking) HasMoneyTrail() bool {
	if b.IsSettled && b.Status.IsSettleable() {
		return true
	}
	switch b.Status {
	case StatusConfirmed, StatusCancelRequested, StatusCancelled:
		return true
	}
	return false
}

// FieldScheduleFilter фильтр расписания поля
type FieldScheduleFilter struct {
	FieldID int64
	From    *time.Time
	To      *time.Time
}
