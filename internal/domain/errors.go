package domain

import (
	"errors"
	"fmt"
)

// Базовая таксономия ошибок ядра. Ошибки слоёв ниже и выше оборачивают их,
// чтобы обработчики могли сопоставить ошибку через errors.Is.
var (
	// ErrValidation некорректные или логически перевёрнутые входные данные
	ErrValidation = errors.New("domain: validation error")

	// ErrConflict слот уже занят или переход статуса невозможен
	ErrConflict = errors.New("domain: conflict")

	// ErrUnauthorized у актора нет роли или владения для операции
	ErrUnauthorized = errors.New("domain: unauthorized")

	// ErrNotFound бронирование или поле не найдено
	ErrNotFound = errors.New("domain: not found")

	// ErrStorage ошибка транзакции или фиксации
	ErrStorage = errors.New("domain: storage error")
)

var (
	ErrInvalidInterval   = fmt.Errorf("%w: interval end must be after start", ErrValidation)
	ErrInvalidSlot       = fmt.Errorf("%w: invalid slot", ErrValidation)
	ErrInvalidAction     = fmt.Errorf("%w: unknown action", ErrValidation)
	ErrInvalidPayload    = fmt.Errorf("%w: invalid transition payload", ErrValidation)
	ErrInvalidSettings   = fmt.Errorf("%w: invalid settings", ErrValidation)
	ErrInvalidTransition = fmt.Errorf("%w: transition not allowed", ErrConflict)
)

// ConflictError слот пересекается с занятым интервалом.
// SlotIndex указывает на слот в том порядке, в котором его передал вызывающий.
type ConflictError struct {
	SlotIndex int
	Interval  Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("domain: slot %d (%s) is already occupied", e.SlotIndex, e.Interval)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AsConflict извлекает *ConflictError из цепочки ошибок
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

// IsClientError возвращает true для ошибок, вызванных самим запросом, а не хранилищем
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFound)
}
