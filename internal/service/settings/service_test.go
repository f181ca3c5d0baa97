package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalSettings), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, s *domain.GlobalSettings) (*domain.GlobalSettings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalSettings), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalSettings), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, s *domain.GlobalSettings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *MockRepository, cache SettingsCache) *Service {
	return NewService(repo, cache, access.NewPolicy(), passthroughTx{}, logger.NewDiscard())
}

func TestCurrent_CacheHit(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	cache.On("Get", mock.Anything).Return(&domain.GlobalSettings{ServiceFee: decimal.NewFromInt(10)}, nil)

	s, err := newService(repo, cache).Current(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10).Equal(s.ServiceFee))
	repo.AssertNotCalled(t, "Get", mock.Anything)
}

func TestCurrent_CacheMissFillsCache(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	stored := &domain.GlobalSettings{ServiceFee: decimal.NewFromInt(5)}

	cache.On("Get", mock.Anything).Return(nil, nil)
	repo.On("Get", mock.Anything).Return(stored, nil)
	cache.On("Set", mock.Anything, stored).Return(nil)

	s, err := newService(repo, cache).Current(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(5).Equal(s.ServiceFee))
	cache.AssertExpectations(t)
}

func TestCurrent_CacheDownFallsBackToDatabase(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	cache.On("Get", mock.Anything).Return(nil, errors.New("connection refused"))
	repo.On("Get", mock.Anything).Return(&domain.GlobalSettings{}, nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := newService(repo, cache).Current(context.Background())
	assert.NoError(t, err)
}

func TestUpdate_AdminOnly(t *testing.T) {
	repo := new(MockRepository)

	_, err := newService(repo, nil).Update(context.Background(), &models.UpdateSettingsRequest{
		Actor:      domain.Actor{UserID: 2, Role: domain.RoleOwner},
		ServiceFee: ptr.Ptr(decimal.NewFromInt(1)),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_RejectsNegativeFee(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Get", mock.Anything).Return(&domain.GlobalSettings{}, nil)

	_, err := newService(repo, nil).Update(context.Background(), &models.UpdateSettingsRequest{
		Actor:      domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		ServiceFee: ptr.Ptr(decimal.NewFromInt(-1)),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_PartialAndInvalidatesCache(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	repo.On("Get", mock.Anything).Return(&domain.GlobalSettings{ServiceFee: decimal.NewFromInt(10), AdminPhone: "+1"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.GlobalSettings) bool {
		return s.ServiceFee.Equal(decimal.NewFromInt(10)) && s.AdminPhone == "+2"
	})).Return(&domain.GlobalSettings{ServiceFee: decimal.NewFromInt(10), AdminPhone: "+2"}, nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	resp, err := newService(repo, cache).Update(context.Background(), &models.UpdateSettingsRequest{
		Actor:      domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		AdminPhone: ptr.Ptr("+2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+2", resp.AdminPhone)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
