package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("create_booking: field not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда актор не может бронировать за этого пользователя или блокировать поле
	ErrAccessDenied = fmt.Errorf("create_booking: access denied: %w", domain.ErrUnauthorized)

	// ErrSlotNotAvailable возвращается, когда слот первой недели занят
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: internal error: %w", domain.ErrStorage)
)
