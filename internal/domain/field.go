package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Field represents a bookable resource
type Field struct {
	ID          int64
	Name        string
	HourlyPrice decimal.Decimal
	OwnerID     *int64 // nil - поле управляется платформой
	ClubID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if userID is the field's owner
func (f *Field) IsOwnedBy(userID int64) bool {
	return f.OwnerID != nil && *f.OwnerID == userID
}
