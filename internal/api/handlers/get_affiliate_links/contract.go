package get_affiliate_links

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/affiliate/models"
)

type AffiliateService interface {
	ListLinks(ctx context.Context) (*models.LinkListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
