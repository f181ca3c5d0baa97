package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlots       = "некорректные слоты: ожидаются дата YYYY-MM-DD и время HH:MM, окончание позже начала"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgFieldNotFound      = "поле не найдено"
	msgAccessDenied       = "недостаточно прав для бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Unauthorized: missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid slots: user_id=%d, field_id=%d, error=%v", actor.UserID, req.FieldID, err)
			handlers.RespondBadRequest(w, msgInvalidSlots)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, field_id=%d, error=%v", actor.UserID, req.FieldID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable, err)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /bookings - Field not found: field_id=%d", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d, role=%s, field_id=%d", actor.UserID, actor.Role, req.FieldID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, field_id=%d, error=%v",
				actor.UserID, req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Bookings created: count=%d, skipped=%d, series_id=%s, field_id=%d",
		len(result.BookingIDs), len(result.Skipped), result.SeriesID, req.FieldID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
