package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	Actor      domain.Actor
	ServiceFee *decimal.Decimal
	AdminPhone *string
}

// SettingsResponse ответ с настройками
type SettingsResponse struct {
	ServiceFee decimal.Decimal `json:"serviceFee"`
	AdminPhone string          `json:"adminPhone"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.GlobalSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		ServiceFee: s.ServiceFee,
		AdminPhone: s.AdminPhone,
		UpdatedAt:  s.UpdatedAt,
	}
}
