package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Event событие уведомления, которое получает внешний нотификатор
type Event struct {
	ID         uuid.UUID `json:"id"`
	BookingID  int64     `json:"booking_id"`
	UserID     *int64    `json:"user_id"` // null - всем администраторам
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent создает событие с новым идентификатором
func NewEvent(n domain.Notification, now time.Time) Event {
	return Event{
		ID:         uuid.New(),
		BookingID:  n.BookingID,
		UserID:     n.UserID,
		Title:      n.Title,
		Message:    n.Message,
		Category:   string(n.Category),
		OccurredAt: now.UTC(),
	}
}

// ErrorResponse модель ошибки от нотификатора
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
