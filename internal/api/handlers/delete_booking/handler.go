package delete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidForce     = "некорректный параметр force"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "недостаточно прав для удаления бронирования"
	msgCannotDelete     = "бронирование нельзя удалить в текущем статусе"
	msgForceRequired    = "у бронирования есть платёжная история, требуется force=true"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}?force=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Unauthorized: missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	force, err := handlers.QueryBool(r, "force")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid force flag: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForce)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteBookingRequest{
		Actor:     actor,
		BookingID: bookingID,
		Force:     force,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrForceRequired):
			h.logger.Warn("DELETE /bookings/{id} - Force required: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgForceRequired, err)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("DELETE /bookings/{id} - Cannot delete: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotDelete, err)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted: booking_id=%d, force=%t", bookingID, force)
	w.WriteHeader(http.StatusNoContent)
}
