package domain

// NotificationCategory категория уведомления для внешнего получателя
type NotificationCategory string

const (
	CategoryBooking NotificationCategory = "booking"
	CategoryStatus  NotificationCategory = "status"
	CategoryAdmin   NotificationCategory = "admin"
)

// Notification событие для внешнего нотификатора
type Notification struct {
	UserID    *int64 // nil - всем администраторам
	BookingID int64
	Title     string
	Message   string
	Category  NotificationCategory
}
