package transition_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/transition_booking"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Action       string           `json:"action"` // confirm, reject, request_cancel, approve_cancel, reject_cancel
	Reason       *string          `json:"reason,omitempty"`
	RefundAmount *decimal.Decimal `json:"refundAmount,omitempty"`
	AdminNote    *string          `json:"adminNote,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *transitionBooking.Request {
	return &transitionBooking.Request{
		Actor:        actor,
		BookingID:    bookingID,
		Action:       r.Action,
		Reason:       r.Reason,
		RefundAmount: r.RefundAmount,
		AdminNote:    r.AdminNote,
	}
}
