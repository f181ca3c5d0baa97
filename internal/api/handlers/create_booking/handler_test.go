package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const body = `{"fieldId":7,"slots":[{"date":"2026-05-04","startTime":"10:00","endTime":"11:00"}]}`

func newRequest(payload string, actor *domain.Actor) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	if actor != nil {
		r = r.WithContext(middleware.WithActor(r.Context(), *actor))
	}
	return r
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	actor := domain.Actor{UserID: 42, Role: domain.RoleUser}
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.FieldID == 7 && req.UserID == 42 && len(req.Slots) == 1 && req.Slots[0].StartTime == "10:00"
	})).Return(&createBooking.Response{
		BookingIDs: []int64{100},
		SeriesID:   "series",
		Bookings: []*domain.Booking{{
			ID: 100, FieldID: 7, UserID: 42,
			StartTime: start, EndTime: start.Add(time.Hour),
			Status:     domain.StatusPending,
			TotalPrice: decimal.NewFromInt(110),
			ServiceFee: decimal.NewFromInt(10),
		}},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest(body, &actor))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int64{100}, resp.BookingIDs)
	assert.Equal(t, "series", resp.SeriesID)
	require.Len(t, resp.Bookings, 1)
	assert.True(t, decimal.NewFromInt(110).Equal(resp.Bookings[0].TotalPrice))
	assert.Empty(t, resp.Skipped)
	uc.AssertExpectations(t)
}

func TestHandle_ConflictReturnsSlotIndex(t *testing.T) {
	uc := new(mockUseCase)
	actor := domain.Actor{UserID: 42, Role: domain.RoleUser}
	conflict := fmt.Errorf("%w: %w", createBooking.ErrSlotNotAvailable, &domain.ConflictError{SlotIndex: 0})
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, conflict)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest(body, &actor))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp handlers.ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.SlotIndex)
	assert.Equal(t, 0, *resp.SlotIndex)
}

func TestHandle_ErrorMapping(t *testing.T) {
	actor := domain.Actor{UserID: 42, Role: domain.RoleUser}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: createBooking.ErrFieldNotFound, wantStatus: http.StatusNotFound},
		{name: "access denied", err: createBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest(body, &actor))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	actor := domain.Actor{UserID: 42, Role: domain.RoleUser}

	t.Run("missing actor", func(t *testing.T) {
		uc := new(mockUseCase)
		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest(body, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := new(mockUseCase)
		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewDiscard()).Handle(rec, newRequest(`{"fieldId":"x"}`, &actor))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})
}
