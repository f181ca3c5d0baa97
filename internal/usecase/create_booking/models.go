package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	kindBooking = "booking"
	kindBlock   = "block"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor       domain.Actor       // кто выполняет запрос
	FieldID     int64              // ID поля
	UserID      int64              // за кого бронируем; для блокировки игнорируется
	Slots       []domain.SlotInput // слоты в часовом поясе площадки
	IsBlock     bool               // блокировка поля владельцем или администратором
	IsRecurring bool               // повторять еженедельно
	ReceiptRef  *string            // ссылка на чек, хранится как есть
}

// Options параметры аллокатора из конфигурации
type Options struct {
	Location           *time.Location
	RecurringWeeks     int // всего недель, включая первую
	MaxSlotsPerRequest int // 0 - без ограничения
}

// SkippedSlot слот повторяющегося бронирования, пропущенный из-за занятости
type SkippedSlot struct {
	Week      int // 1..RecurringWeeks-1
	SlotIndex int // индекс слота в запросе
	StartTime time.Time
	EndTime   time.Time
}

// Response модель ответа с созданными бронированиями
type Response struct {
	BookingIDs []int64           // в хронологическом порядке
	Bookings   []*domain.Booking // созданные строки
	SeriesID   string            // общий для всех строк запроса
	Skipped    []SkippedSlot
}
