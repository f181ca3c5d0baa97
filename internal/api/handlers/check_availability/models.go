package check_availability

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-FieldBookingService/internal/usecase/check_availability"
)

// SlotRequest слот в часовом поясе площадки
type SlotRequest struct {
	Date      string `json:"date"`      // "2026-05-04"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00" или "24:00"
}

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	Slots []SlotRequest `json:"slots"`
}

// QuotedSlotResponse предварительная стоимость слота
type QuotedSlotResponse struct {
	SlotIndex  int             `json:"slotIndex"`
	StartTime  time.Time       `json:"startTime"`
	EndTime    time.Time       `json:"endTime"`
	ServiceFee decimal.Decimal `json:"serviceFee"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available         bool                 `json:"available"`
	ConflictSlotIndex *int                 `json:"conflictSlotIndex,omitempty"`
	Quote             []QuotedSlotResponse `json:"quote,omitempty"`
	Total             *decimal.Decimal     `json:"total,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(fieldID int64) *checkAvailability.Request {
	slots := make([]domain.SlotInput, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = domain.SlotInput{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return &checkAvailability.Request{FieldID: fieldID, Slots: slots}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Available:         resp.Available,
		ConflictSlotIndex: resp.ConflictSlotIndex,
	}
	if !resp.Available {
		return result
	}

	total := resp.Total
	result.Total = &total
	for _, q := range resp.Quote {
		result.Quote = append(result.Quote, QuotedSlotResponse{
			SlotIndex:  q.SlotIndex,
			StartTime:  q.StartTime,
			EndTime:    q.EndTime,
			ServiceFee: q.ServiceFee,
			TotalPrice: q.TotalPrice,
		})
	}
	return result
}
