package update_equipment_status

import "github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{Status: r.Status, Notes: r.Notes}
}
