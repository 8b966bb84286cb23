package get_commissions

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

type AffiliateService interface {
	ListCommissions(ctx context.Context, status *string) (*models.CommissionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
