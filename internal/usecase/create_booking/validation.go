package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и разбирает слоты.
// Ничего не читает из хранилища.
func validateRequest(req *Request, opts Options) ([]domain.Interval, error) {
	if req.FieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if !req.IsBlock && req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	if opts.MaxSlotsPerRequest > 0 && len(req.Slots) > opts.MaxSlotsPerRequest {
		return nil, fmt.Errorf("%w: at most %d slots per request", ErrInvalidInput, opts.MaxSlotsPerRequest)
	}

	if req.ReceiptRef != nil && len(*req.ReceiptRef) > domain.MaxReceiptRefLength {
		return nil, fmt.Errorf("%w: receiptRef is too long", ErrInvalidInput)
	}

	intervals, err := domain.ParseSlots(req.Slots, opts.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return intervals, nil
}
