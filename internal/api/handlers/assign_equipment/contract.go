package assign_equipment

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
)

type EquipmentService interface {
	Assign(ctx context.Context, unitID, bookingID int64) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
