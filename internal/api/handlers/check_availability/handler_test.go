package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
	checkAvailability "github.com/m04kA/SMC-FieldBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkAvailability.Response), args.Error(1)
}

const body = `{"slots":[{"date":"2026-05-04","startTime":"10:00","endTime":"11:00"},{"date":"2026-05-04","startTime":"11:00","endTime":"12:00"}]}`

func newRequest(fieldID, payload string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/fields/"+fieldID+"/availability", strings.NewReader(payload))
	return mux.SetURLVars(r, map[string]string{"fieldId": fieldID})
}

func TestHandle_Conflict(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *checkAvailability.Request) bool {
		return req.FieldID == 4 && len(req.Slots) == 2
	})).Return(&checkAvailability.Response{Available: false, ConflictSlotIndex: ptr.Ptr(1)}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest("4", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	require.NotNil(t, resp.ConflictSlotIndex)
	assert.Equal(t, 1, *resp.ConflictSlotIndex)
	assert.Nil(t, resp.Total)
}

func TestHandle_AvailableWithQuote(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&checkAvailability.Response{
		Available: true,
		Quote: []checkAvailability.QuotedSlot{
			{SlotIndex: 0, ServiceFee: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(110)},
			{SlotIndex: 1, ServiceFee: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(110)},
		},
		Total: decimal.NewFromInt(220),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest("4", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
	assert.Len(t, resp.Quote, 2)
	require.NotNil(t, resp.Total)
	assert.True(t, decimal.NewFromInt(220).Equal(*resp.Total))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid slots", err: checkAvailability.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "field not found", err: checkAvailability.ErrFieldNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: checkAvailability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest("4", body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
