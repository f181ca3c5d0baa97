package settings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/access"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/settings/models"
)

// Service сервис глобальных настроек
type Service struct {
	settingsRepo SettingsRepository
	cache        SettingsCache // nil - кеш отключен
	authorizer   Authorizer
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	cache SettingsCache,
	authorizer Authorizer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		cache:        cache,
		authorizer:   authorizer,
		txManager:    txManager,
		logger:       logger,
	}
}

// Current возвращает снимок настроек для расчётов.
// Недоступность кеша не ломает запрос, настройки читаются из БД.
func (s *Service) Current(ctx context.Context) (domain.GlobalSettings, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Current: cache read failed, falling back to database: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Current: repository error: %v", err)
		return domain.GlobalSettings{}, fmt.Errorf("%w: Current - repository error: %w", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, settings); err != nil {
			s.logger.Warn("Current: cache write failed: %v", err)
		}
	}

	return *settings, nil
}

// Get возвращает настройки (публично)
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(&settings), nil
}

// Update обновляет настройки
// Доступно только администраторам
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings by user=%d", req.Actor.UserID)

	if !s.authorizer.IsAuthorized(req.Actor, access.OpUpdateSettings, access.Resource{}) {
		s.logger.Warn("Update: access denied for user=%d role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	var result *domain.GlobalSettings
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.settingsRepo.Get(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Update - read settings: %w", ErrInternal, err)
		}

		updated := *current
		if req.ServiceFee != nil {
			updated.ServiceFee = *req.ServiceFee
		}
		if req.AdminPhone != nil {
			updated.AdminPhone = *req.AdminPhone
		}

		if err := updated.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		result, err = s.settingsRepo.Update(txCtx, &updated)
		if err != nil {
			return fmt.Errorf("%w: Update - write settings: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Update: failed: %v", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("Update: cache invalidation failed, stale settings until ttl: %v", err)
		}
	}

	s.logger.Info("Update: settings updated, serviceFee=%s", result.ServiceFee.StringFixed(domain.MoneyScale))
	return models.FromDomainSettings(result), nil
}
