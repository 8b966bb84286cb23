package catalog

import (
	"context"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// CatalogRepository справочник пляжей и пакетов
type CatalogRepository interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
