package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

// UseCase use case проверки доступности слотов без бронирования
type UseCase struct {
	fieldRepo FieldRepository
	checker   AvailabilityChecker
	settings  SettingsProvider
	location  *time.Location
	maxSlots  int
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fieldRepo FieldRepository,
	checker AvailabilityChecker,
	settings SettingsProvider,
	location *time.Location,
	maxSlots int,
	logger Logger,
) *UseCase {
	return &UseCase{
		fieldRepo: fieldRepo,
		checker:   checker,
		settings:  settings,
		location:  location,
		maxSlots:  maxSlots,
		logger:    logger,
	}
}

// Execute проверяет слоты в порядке запроса.
// Занятость не является ошибкой: ответ содержит индекс первого занятого слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: field=%d, slots=%d", req.FieldID, len(req.Slots))

	// 1. Валидация входных данных, до обращения к хранилищу
	intervals, err := validateRequest(req, uc.location, uc.maxSlots)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем поле
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("CheckAvailability: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 3. Проверяем занятость
	if err := uc.checker.Check(ctx, req.FieldID, intervals); err != nil {
		if conflict, ok := domain.AsConflict(err); ok {
			uc.logger.Info("CheckAvailability: field=%d slot %d is occupied", req.FieldID, conflict.SlotIndex)
			return &Response{Available: false, ConflictSlotIndex: &conflict.SlotIndex}, nil
		}
		uc.logger.Error("CheckAvailability: check failed for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	// 4. Предварительная стоимость по текущему сбору
	settings, err := uc.settings.Current(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to read settings: %v", err)
		return nil, fmt.Errorf("%w: failed to read settings: %v", ErrInternal, err)
	}

	order := domain.SortedOrder(intervals)
	sorted := make([]domain.Interval, len(order))
	for i, idx := range order {
		sorted[i] = intervals[idx]
	}

	resp := &Response{Available: true, Total: decimal.Zero}
	for i, slot := range domain.PriceSlots(sorted, field.HourlyPrice, settings.ServiceFee) {
		resp.Quote = append(resp.Quote, QuotedSlot{
			SlotIndex:  order[i],
			StartTime:  slot.Interval.Start,
			EndTime:    slot.Interval.End,
			ServiceFee: slot.ServiceFee,
			TotalPrice: slot.TotalPrice,
		})
		resp.Total = resp.Total.Add(slot.TotalPrice)
	}

	uc.logger.Info("CheckAvailability: field=%d all %d slots are free, total=%s", req.FieldID, len(intervals), resp.Total.StringFixed(domain.MoneyScale))
	return resp, nil
}
