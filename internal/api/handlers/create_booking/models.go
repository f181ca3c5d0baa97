package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

// SlotRequest слот в часовом поясе площадки
type SlotRequest struct {
	Date      string `json:"date"`      // "2026-05-04"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00" или "24:00"
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FieldID     int64         `json:"fieldId"`
	UserID      int64         `json:"userId"`
	Slots       []SlotRequest `json:"slots"`
	IsBlock     bool          `json:"isBlock"`
	IsRecurring bool          `json:"isRecurring"`
	ReceiptRef  *string       `json:"receiptRef,omitempty"`
}

// SkippedSlotResponse слот серии, пропущенный из-за занятости
type SkippedSlotResponse struct {
	Week      int       `json:"week"`
	SlotIndex int       `json:"slotIndex"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingIDs []int64                  `json:"bookingIds"`
	SeriesID   string                   `json:"seriesId"`
	Bookings   []models.BookingResponse `json:"bookings"`
	Skipped    []SkippedSlotResponse    `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	slots := make([]domain.SlotInput, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = domain.SlotInput{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
	}

	userID := r.UserID
	if userID == 0 {
		userID = actor.UserID
	}

	return &createBooking.Request{
		Actor:       actor,
		FieldID:     r.FieldID,
		UserID:      userID,
		Slots:       slots,
		IsBlock:     r.IsBlock,
		IsRecurring: r.IsRecurring,
		ReceiptRef:  r.ReceiptRef,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	result := &CreateBookingResponse{
		BookingIDs: resp.BookingIDs,
		SeriesID:   resp.SeriesID,
		Bookings:   models.FromDomainBookingList(resp.Bookings).Bookings,
		Skipped:    make([]SkippedSlotResponse, 0, len(resp.Skipped)),
	}

	for _, s := range resp.Skipped {
		result.Skipped = append(result.Skipped, SkippedSlotResponse{
			Week:      s.Week,
			SlotIndex: s.SlotIndex,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return result
}
