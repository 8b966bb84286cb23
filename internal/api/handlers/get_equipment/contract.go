package get_equipment

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/equipment/models"
)

type EquipmentService interface {
	List(ctx context.Context) (*models.EquipmentListResponse, error)
	ListAvailable(ctx context.Context) (*models.EquipmentListResponse, error)
	Get(ctx context.Context, id int64) (*models.EquipmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
