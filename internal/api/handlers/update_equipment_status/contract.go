package update_equipment_status

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
)

type EquipmentService interface {
	UpdateStatus(ctx context.Context, unitID int64, req *models.UpdateStatusRequest) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
