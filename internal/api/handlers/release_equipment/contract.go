package release_equipment

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
)

type EquipmentService interface {
	Release(ctx context.Context, unitID int64) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
