package affiliate_click

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

type AffiliateService interface {
	Click(ctx context.Context, customURL string) (*models.LinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
