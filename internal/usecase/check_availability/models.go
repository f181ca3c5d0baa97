package check_availability

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса проверки доступности
type Request struct {
	FieldID int64              // ID поля
	Slots   []domain.SlotInput // слоты в часовом поясе площадки
}

// Response модель ответа
type Response struct {
	Available         bool
	ConflictSlotIndex *int            // индекс занятого слота в запросе
	Quote             []QuotedSlot    // стоимость, если все слоты свободны
	Total             decimal.Decimal
}

// QuotedSlot предварительная стоимость слота
type QuotedSlot struct {
	SlotIndex  int
	StartTime  time.Time
	EndTime    time.Time
	ServiceFee decimal.Decimal
	TotalPrice decimal.Decimal
}
