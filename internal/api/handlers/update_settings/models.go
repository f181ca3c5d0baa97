package update_settings

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
// Все поля опциональны
type UpdateSettingsRequest struct {
	ServiceFee *decimal.Decimal `json:"serviceFee,omitempty"`
	AdminPhone *string          `json:"adminPhone,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(actor domain.Actor) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		Actor:      actor,
		ServiceFee: r.ServiceFee,
		AdminPhone: r.AdminPhone,
	}
}
