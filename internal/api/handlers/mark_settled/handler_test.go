package mark_settled

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/ledger/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) MarkSettled(ctx context.Context, req *models.MarkSettledRequest) (*models.MarkSettledResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarkSettledResponse), args.Error(1)
}

func newRequest(payload string, actor domain.Actor) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/settlements", strings.NewReader(payload))
	return r.WithContext(middleware.WithActor(r.Context(), actor))
}

func TestHandle_MarkSettled(t *testing.T) {
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	svc := new(mockService)
	svc.On("MarkSettled", mock.Anything, &models.MarkSettledRequest{
		Actor:      admin,
		BookingIDs: []int64{1, 2},
	}).Return(&models.MarkSettledResponse{Updated: 1}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewDiscard()).Handle(rec, newRequest(`{"bookingIds":[1,2]}`, admin))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.MarkSettledResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Updated)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	owner := domain.Actor{UserID: 2, Role: domain.RoleOwner}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty ids", err: ledger.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "pending booking", err: ledger.ErrNotSettleable, wantStatus: http.StatusBadRequest},
		{name: "unknown id", err: ledger.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "not admin", err: ledger.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", err: ledger.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("MarkSettled", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewDiscard()).Handle(rec, newRequest(`{"bookingIds":[1]}`, owner))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
