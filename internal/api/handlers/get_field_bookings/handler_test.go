package get_field_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetFieldSchedule(ctx context.Context, req *models.GetFieldScheduleRequest) (*models.FieldScheduleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FieldScheduleResponse), args.Error(1)
}

func newRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return mux.SetURLVars(r, map[string]string{"fieldId": "3"})
}

func TestHandle_DatesInVenueTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	wantFrom := time.Date(2026, 5, 1, 0, 0, 0, 0, loc).UTC()
	wantTo := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	svc := new(mockService)
	svc.On("GetFieldSchedule", mock.Anything, mock.MatchedBy(func(req *models.GetFieldScheduleRequest) bool {
		return req.FieldID == 3 && req.From.Equal(wantFrom) && req.To.Equal(wantTo)
	})).Return(&models.FieldScheduleResponse{FieldID: 3, Items: []models.ScheduleItem{}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, loc, logger.NewDiscard()).
		Handle(rec, newRequest("/api/v1/fields/3/bookings?from=2026-05-01&to=2026-05-02T00:00:00Z"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.FieldScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.FieldID)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("bad date", func(t *testing.T) {
		svc := new(mockService)
		rec := httptest.NewRecorder()
		NewHandler(svc, time.UTC, logger.NewDiscard()).Handle(rec, newRequest("/api/v1/fields/3/bookings?from=01.05.2026"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetFieldSchedule", mock.Anything, mock.Anything)
	})

	t.Run("field not found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetFieldSchedule", mock.Anything, mock.Anything).Return(nil, bookings.ErrFieldNotFound)

		rec := httptest.NewRecorder()
		NewHandler(svc, time.UTC, logger.NewDiscard()).Handle(rec, newRequest("/api/v1/fields/3/bookings"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inverted period", func(t *testing.T) {
		svc := new(mockService)
		svc.On("GetFieldSchedule", mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidInput)

		rec := httptest.NewRecorder()
		NewHandler(svc, time.UTC, logger.NewDiscard()).Handle(rec, newRequest("/api/v1/fields/3/bookings?from=2026-05-02&to=2026-05-01"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
