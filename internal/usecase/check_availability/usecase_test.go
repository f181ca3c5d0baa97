package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

type MockFieldRepository struct {
	mock.Mock
}

func (m *MockFieldRepository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Field), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, fieldID int64, intervals []domain.Interval) error {
	return m.Called(ctx, fieldID, intervals).Error(0)
}

type fixedSettings struct{}

func (fixedSettings) Current(context.Context) (domain.GlobalSettings, error) {
	return domain.GlobalSettings{ServiceFee: decimal.NewFromInt(10)}, nil
}

func newUseCase(fields *MockFieldRepository, checker *MockChecker) *UseCase {
	return NewUseCase(fields, checker, fixedSettings{}, time.UTC, 10, logger.NewDiscard())
}

func slots() []domain.SlotInput {
	return []domain.SlotInput{
		{Date: "2026-05-04", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2026-05-04", StartTime: "10:00", EndTime: "11:00"},
		{Date: "2026-05-04", StartTime: "11:00", EndTime: "12:00"},
	}
}

func TestExecute_AvailableWithQuote(t *testing.T) {
	fields := new(MockFieldRepository)
	checker := new(MockChecker)
	fields.On("GetByID", mock.Anything, int64(10)).Return(&domain.Field{ID: 10, HourlyPrice: decimal.NewFromInt(100)}, nil)
	checker.On("Check", mock.Anything, int64(10), mock.Anything).Return(nil)

	resp, err := newUseCase(fields, checker).Execute(context.Background(), &Request{FieldID: 10, Slots: slots()})
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Nil(t, resp.ConflictSlotIndex)
	require.Len(t, resp.Quote, 3)
	assert.Equal(t, []int{1, 2, 0}, []int{resp.Quote[0].SlotIndex, resp.Quote[1].SlotIndex, resp.Quote[2].SlotIndex})
	assert.Equal(t, "320", resp.Total.String())
}

func TestExecute_Conflict(t *testing.T) {
	fields := new(MockFieldRepository)
	checker := new(MockChecker)
	fields.On("GetByID", mock.Anything, int64(10)).Return(&domain.Field{ID: 10}, nil)
	checker.On("Check", mock.Anything, int64(10), mock.Anything).Return(&domain.ConflictError{SlotIndex: 2})

	resp, err := newUseCase(fields, checker).Execute(context.Background(), &Request{FieldID: 10, Slots: slots()})
	require.NoError(t, err)

	assert.False(t, resp.Available)
	require.NotNil(t, resp.ConflictSlotIndex)
	assert.Equal(t, 2, *resp.ConflictSlotIndex)
	assert.Empty(t, resp.Quote)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("inverted slot fails before any query", func(t *testing.T) {
		fields := new(MockFieldRepository)
		checker := new(MockChecker)

		_, err := newUseCase(fields, checker).Execute(context.Background(), &Request{
			FieldID: 10,
			Slots:   []domain.SlotInput{{Date: "2026-05-04", StartTime: "12:00", EndTime: "12:00"}},
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
		fields.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		fields := new(MockFieldRepository)
		fields.On("GetByID", mock.Anything, int64(10)).Return(nil, fieldRepo.ErrFieldNotFound)

		_, err := newUseCase(fields, new(MockChecker)).Execute(context.Background(), &Request{FieldID: 10, Slots: slots()})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		fields := new(MockFieldRepository)
		checker := new(MockChecker)
		fields.On("GetByID", mock.Anything, int64(10)).Return(&domain.Field{ID: 10}, nil)
		checker.On("Check", mock.Anything, int64(10), mock.Anything).Return(errors.New("connection refused"))

		_, err := newUseCase(fields, checker).Execute(context.Background(), &Request{FieldID: 10, Slots: slots()})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
