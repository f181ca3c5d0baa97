package settings

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда настройки меняет не администратор
	ErrAccessDenied = fmt.Errorf("settings.service: access denied: %w", domain.ErrUnauthorized)

	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = fmt.Errorf("settings.service: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("settings.service: internal error: %w", domain.ErrStorage)
)
