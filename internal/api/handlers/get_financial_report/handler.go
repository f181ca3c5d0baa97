package get_financial_report

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger/models"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgInvalidFilter = "некорректные параметры отчёта"
	msgAccessDenied  = "нет доступа к финансовому отчёту"
)

type Handler struct {
	service  LedgerService
	location *time.Location
	logger   Logger
}

func NewHandler(service LedgerService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/reports/financial?from=2026-05-01&to=2026-06-01&fieldId=1&clubId=2&ownerId=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /reports/financial - Unauthorized: missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	req, err := h.parseRequest(r, actor)
	if err != nil {
		h.logger.Warn("GET /reports/financial - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	report, err := h.service.Report(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /reports/financial - Invalid filter: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, domain.ErrUnauthorized):
			h.logger.Warn("GET /reports/financial - Access denied: user_id=%d, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /reports/financial - Failed to build report: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/financial - Report built: user_id=%d, fields=%d", actor.UserID, len(report.Fields))
	handlers.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) parseRequest(r *http.Request, actor domain.Actor) (*models.ReportRequest, error) {
	req := &models.ReportRequest{Actor: actor}

	var err error
	if req.From, err = handlers.QueryTime(r, "from", h.location); err != nil {
		return nil, err
	}
	if req.To, err = handlers.QueryTime(r, "to", h.location); err != nil {
		return nil, err
	}
	if req.FieldID, err = handlers.QueryInt64(r, "fieldId"); err != nil {
		return nil, err
	}
	if req.ClubID, err = handlers.QueryInt64(r, "clubId"); err != nil {
		return nil, err
	}
	if req.OwnerID, err = handlers.QueryInt64(r, "ownerId"); err != nil {
		return nil, err
	}
	return req, nil
}
