package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Checker проверяет интервалы против занимающих бронирований поля.
// Внутри транзакции пересекающиеся строки блокируются репозиторием.
type Checker struct {
	bookingRepo BookingRepository
	metrics     Metrics
	logger      Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(bookingRepo BookingRepository, metrics Metrics, logger Logger) *Checker {
	return &Checker{
		bookingRepo: bookingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Check проверяет интервалы в порядке входа и возвращает *domain.ConflictError
// для первого занятого. Частичного результата нет: один конфликт проваливает весь набор.
func (c *Checker) Check(ctx context.Context, fieldID int64, intervals []domain.Interval) error {
	occupied, err := c.find(ctx, fieldID, intervals)
	if err != nil {
		return err
	}

	for i, candidate := range intervals {
		if overlapsAny(candidate, occupied) {
			c.logger.Warn("Check: field=%d slot %d %s is occupied", fieldID, i, candidate)
			c.metrics.IncSlotConflict("check")
			return &domain.ConflictError{SlotIndex: i, Interval: candidate}
		}
	}

	return nil
}

// Conflicts возвращает для каждого интервала признак пересечения с занятым временем
func (c *Checker) Conflicts(ctx context.Context, fieldID int64, intervals []domain.Interval) ([]bool, error) {
	occupied, err := c.find(ctx, fieldID, intervals)
	if err != nil {
		return nil, err
	}

	result := make([]bool, len(intervals))
	for i, candidate := range intervals {
		result[i] = overlapsAny(candidate, occupied)
	}
	return result, nil
}

func (c *Checker) find(ctx context.Context, fieldID int64, intervals []domain.Interval) ([]*domain.Booking, error) {
	occupied, err := c.bookingRepo.FindOccupying(ctx, fieldID, intervals)
	if err != nil {
		c.logger.Error("Check: failed to load occupying bookings for field=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: FindOccupying: %w", ErrInternal, err)
	}
	return occupied, nil
}

func overlapsAny(candidate domain.Interval, occupied []*domain.Booking) bool {
	for _, b := range occupied {
		if b.IsOccupying() && candidate.Overlaps(b.Interval()) {
			return true
		}
	}
	return false
}
