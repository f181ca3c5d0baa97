package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
	EndOfDay   = "24:00"      // допустимо только как время окончания слота
)

// Default configuration values
const (
	DefaultRecurringWeeks = 12 // всего повторений, включая первую неделю (≈ квартал)
	DefaultTimezone       = "UTC"
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxAdminNoteLength          = 500
	MaxReceiptRefLength         = 1024
	MaxAdminPhoneLength         = 32
	MoneyScale                  = 2 // знаков после запятой у денежных сумм
)

// OccupyingStatuses статусы, которые занимают интервал на поле
// Бронирования в REJECTED и CANCELLED не мешают новым бронированиям
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelRequested,
	StatusBlocked,
}

// SettleableStatuses статусы, по которым деньги считаются окончательно полученными
// Используется в финансовом отчёте
var SettleableStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
}

// StatusStrings переводит список статусов в []string для SQL фильтров
func StatusStrings(statuses []BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
