package transition_booking

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("transition_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда актор не может выполнить действие
	ErrAccessDenied = fmt.Errorf("transition_booking: access denied: %w", domain.ErrUnauthorized)

	// ErrConcurrentUpdate возвращается, если статус изменился параллельным запросом
	ErrConcurrentUpdate = fmt.Errorf("transition_booking: booking was modified concurrently: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transition_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("transition_booking: internal error: %w", domain.ErrStorage)
)
