package ledger

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда у актора нет прав на отчёт или расчёт
	ErrAccessDenied = fmt.Errorf("ledger.service: access denied: %w", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректном фильтре или списке бронирований
	ErrInvalidInput = fmt.Errorf("ledger.service: invalid input data: %w", domain.ErrValidation)

	// ErrBookingNotFound возвращается, если хотя бы одного бронирования из списка нет
	ErrBookingNotFound = fmt.Errorf("ledger.service: booking not found: %w", domain.ErrNotFound)

	// ErrNotSettleable возвращается, если бронирование не в CONFIRMED/CANCELLED и доли владельца у него нет
	ErrNotSettleable = fmt.Errorf("ledger.service: booking is not settleable in current status: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("ledger.service: internal error: %w", domain.ErrStorage)
)
