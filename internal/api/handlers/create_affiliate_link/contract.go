package create_affiliate_link

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

type AffiliateService interface {
	CreateLink(ctx context.Context, req *models.CreateLinkRequest) (*models.LinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
