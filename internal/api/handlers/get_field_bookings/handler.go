package get_field_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgInvalidPeriod  = "некорректный период: ожидается RFC3339 или YYYY-MM-DD, from раньше to"
	msgFieldNotFound  = "поле не найдено"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

// NewHandler location используется для дат без времени в query
func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/bookings?from=2026-05-01&to=2026-05-08
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := handlers.PathInt64(r, "fieldId")
	if err != nil {
		h.logger.Warn("GET /fields/{id}/bookings - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	from, err := handlers.QueryTime(r, "from", h.location)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/bookings - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.QueryTime(r, "to", h.location)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/bookings - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetFieldSchedule(r.Context(), &models.GetFieldScheduleRequest{
		FieldID: fieldID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /fields/{id}/bookings - Invalid period: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /fields/{id}/bookings - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		default:
			h.logger.Error("GET /fields/{id}/bookings - Failed to get schedule: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id}/bookings - Schedule retrieved: field_id=%d, count=%d", fieldID, len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}
