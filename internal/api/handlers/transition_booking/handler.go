package transition_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "некорректное действие или его параметры"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "недостаточно прав для смены статуса"
	msgInvalidTransition  = "переход невозможен из текущего статуса"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/transitions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/transitions - Unauthorized: missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/transitions - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/transitions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings/{id}/transitions - Invalid action: booking_id=%d, action=%s, error=%v", bookingID, req.Action, err)
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/transitions - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /bookings/{id}/transitions - Access denied: booking_id=%d, user_id=%d, action=%s", bookingID, actor.UserID, req.Action)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings/{id}/transitions - Invalid transition: booking_id=%d, action=%s, error=%v", bookingID, req.Action, err)
			handlers.RespondConflict(w, msgInvalidTransition, err)

		default:
			h.logger.Error("POST /bookings/{id}/transitions - Failed to apply transition: booking_id=%d, action=%s, error=%v",
				bookingID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/transitions - Status changed: booking_id=%d, %s -> %s",
		bookingID, result.PreviousStatus, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
