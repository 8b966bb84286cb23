package get_catalog

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/service/catalog/models"
)

type CatalogService interface {
	ListLocations(ctx context.Context) ([]models.LocationResponse, error)
	ListPackages(ctx context.Context) ([]models.PackageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
