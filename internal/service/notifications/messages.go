package notifications

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// BookingCreated уведомления о новом бронировании: клиенту, владельцу поля и администраторам.
// Для блокировок клиенту ничего не отправляется.
func BookingCreated(field *domain.Field, bookings []*domain.Booking, isBlock bool) []domain.Notification {
	if len(bookings) == 0 {
		return nil
	}

	first := bookings[0]
	when := first.StartTime.Format("2006-01-02 15:04 MST")
	summary := fmt.Sprintf("%d slot(s) on %q starting %s", len(bookings), field.Name, when)

	notes := make([]domain.Notification, 0, 3)

	if !isBlock {
		notes = append(notes, domain.Notification{
			UserID:    &first.UserID,
			BookingID: first.ID,
			Title:     "Booking received",
			Message:   fmt.Sprintf("Your booking of %s is pending confirmation.", summary),
			Category:  domain.CategoryBooking,
		})
	}

	if field.OwnerID != nil && *field.OwnerID != first.UserID {
		title := "New booking"
		if isBlock {
			title = "Field blocked"
		}
		notes = append(notes, domain.Notification{
			UserID:    field.OwnerID,
			BookingID: first.ID,
			Title:     title,
			Message:   fmt.Sprintf("%s: %s.", title, summary),
			Category:  domain.CategoryBooking,
		})
	}

	notes = append(notes, domain.Notification{
		UserID:    nil,
		BookingID: first.ID,
		Title:     "New booking",
		Message:   fmt.Sprintf("User %d created %s (block=%t).", first.UserID, summary, isBlock),
		Category:  domain.CategoryAdmin,
	})

	return notes
}

// StatusChanged уведомления о смене статуса бронирования
func StatusChanged(booking *domain.Booking, change domain.StatusChange) []domain.Notification {
	user := booking.UserID
	notify := func(title, message string) domain.Notification {
		return domain.Notification{
			UserID:    &user,
			BookingID: booking.ID,
			Title:     title,
			Message:   message,
			Category:  domain.CategoryStatus,
		}
	}

	switch change.Action {
	case domain.ActionConfirm:
		return []domain.Notification{notify("Booking confirmed",
			fmt.Sprintf("Your booking #%d is confirmed.", booking.ID))}

	case domain.ActionReject:
		return []domain.Notification{notify("Booking rejected",
			fmt.Sprintf("Your booking #%d was rejected.", booking.ID))}

	case domain.ActionRequestCancel:
		return []domain.Notification{
			notify("Cancellation request received",
				fmt.Sprintf("We received your cancellation request for booking #%d.", booking.ID)),
			{
				UserID:    nil,
				BookingID: booking.ID,
				Title:     "Cancellation requested",
				Message:   fmt.Sprintf("User %d requested cancellation of booking #%d.", user, booking.ID),
				Category:  domain.CategoryAdmin,
			},
		}

	case domain.ActionApproveCancel:
		refund := "0"
		if change.RefundAmount != nil {
			refund = change.RefundAmount.StringFixed(domain.MoneyScale)
		}
		return []domain.Notification{notify("Booking cancelled",
			fmt.Sprintf("Booking #%d is cancelled, refund amount %s.", booking.ID, refund))}

	case domain.ActionRejectCancel:
		return []domain.Notification{notify("Cancellation declined",
			fmt.Sprintf("Your cancellation request for booking #%d was declined, the booking stays confirmed.", booking.ID))}
	}

	return nil
}
