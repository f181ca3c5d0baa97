package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings.service: booking not found: %w", domain.ErrNotFound)

	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = fmt.Errorf("bookings.service: field not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = fmt.Errorf("bookings.service: access denied: %w", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings.service: invalid input data: %w", domain.ErrValidation)

	// ErrCannotDelete возвращается, когда бронирование в текущем статусе удалить нельзя
	ErrCannotDelete = fmt.Errorf("bookings.service: booking cannot be deleted in current status: %w", domain.ErrConflict)

	// ErrForceRequired возвращается при удалении бронирования с денежной историей без force
	ErrForceRequired = fmt.Errorf("bookings.service: booking has payment history, force delete required: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("bookings.service: internal error: %w", domain.ErrStorage)
)
