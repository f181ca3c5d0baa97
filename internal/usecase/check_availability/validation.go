package check_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// validateRequest валидирует запрос и разбирает слоты
func validateRequest(req *Request, loc *time.Location, maxSlots int) ([]domain.Interval, error) {
	if req.FieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	if maxSlots > 0 && len(req.Slots) > maxSlots {
		return nil, fmt.Errorf("%w: at most %d slots per request", ErrInvalidInput, maxSlots)
	}

	intervals, err := domain.ParseSlots(req.Slots, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return intervals, nil
}
