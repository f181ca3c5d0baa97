package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GlobalSettings единственная строка глобальных настроек платформы
type GlobalSettings struct {
	ServiceFee decimal.Decimal // сбор за каждый непрерывный блок слотов
	AdminPhone string
	UpdatedAt  time.Time
}

// DefaultGlobalSettings настройки, которые создаются при первом чтении
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		ServiceFee: decimal.Zero,
		AdminPhone: "",
	}
}

// Validate проверяет значения настроек перед сохранением
func (s GlobalSettings) Validate() error {
	if s.ServiceFee.IsNegative() {
		return fmt.Errorf("%w: serviceFee must be >= 0", ErrInvalidSettings)
	}
	if s.ServiceFee.Exponent() < -MoneyScale {
		return fmt.Errorf("%w: serviceFee must have at most %d decimal places", ErrInvalidSettings, MoneyScale)
	}
	if len(s.AdminPhone) > MaxAdminPhoneLength {
		return fmt.Errorf("%w: adminPhone is too long", ErrInvalidSettings)
	}
	return nil
}
