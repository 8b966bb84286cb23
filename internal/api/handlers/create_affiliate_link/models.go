package create_affiliate_link

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

// CreateLinkRequest HTTP request model
type CreateLinkRequest struct {
	UserID         int64            `json:"userId" validate:"required,gt=0"`
	CustomURL      *string          `json:"customUrl,omitempty"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateLinkRequest) ToServiceRequest() *models.CreateLinkRequest {
	return &models.CreateLinkRequest{
		UserID:         r.UserID,
		CustomURL:      r.CustomURL,
		CommissionRate: r.CommissionRate,
	}
}
