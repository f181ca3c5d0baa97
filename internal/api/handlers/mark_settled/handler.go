package mark_settled

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingIDs  = "ожидается непустой список положительных ID бронирований"
	msgNotSettleable      = "выплату можно отметить только для подтверждённых или отменённых бронирований"
	msgBookingNotFound    = "часть бронирований не найдена"
	msgAccessDenied       = "отмечать выплаты может только администратор"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /settlements - Unauthorized: missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req MarkSettledRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /settlements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkSettled(r.Context(), &models.MarkSettledRequest{
		Actor:      actor,
		BookingIDs: req.BookingIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotSettleable):
			h.logger.Warn("POST /settlements - Not settleable: ids=%v, error=%v", req.BookingIDs, err)
			handlers.RespondBadRequest(w, msgNotSettleable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /settlements - Invalid booking ids: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingIDs)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /settlements - Bookings not found: ids=%v", req.BookingIDs)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("POST /settlements - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /settlements - Failed to mark settled: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /settlements - Marked settled: requested=%d, updated=%d", len(req.BookingIDs), result.Updated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
