package transition_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	Actor        domain.Actor
	BookingID    int64
	Action       string
	Reason       *string          // request_cancel
	RefundAmount *decimal.Decimal // approve_cancel
	AdminNote    *string          // approve_cancel, reject_cancel
}

// Response модель ответа
type Response struct {
	Booking        *domain.Booking // состояние после перехода
	PreviousStatus domain.BookingStatus
}
