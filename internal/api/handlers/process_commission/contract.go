package process_commission

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

type AffiliateService interface {
	ProcessCommission(ctx context.Context, id int64) (*models.CommissionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
