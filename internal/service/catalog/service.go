package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/catalog"
	"github.com/m04kA/BBQ-RentalService/internal/service/catalog/models"
)

// Service чтение справочника пляжей и пакетов
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса справочника
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListLocations все пляжи
func (s *Service) ListLocations(ctx context.Context) ([]models.LocationResponse, error) {
	list, err := s.repo.ListLocations(ctx)
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainLocations(list), nil
}

// ListPackages все пакеты
func (s *Service) ListPackages(ctx context.Context) ([]models.PackageResponse, error) {
	list, err := s.repo.ListPackages(ctx)
	if err != nil {
		s.logger.Error("ListPackages: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPackages - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPackages(list), nil
}

// LocationName название пляжа для запроса погоды
func (s *Service) LocationName(ctx context.Context, id int64) (string, error) {
	loc, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrLocationNotFound) {
			s.logger.Warn("LocationName: location id=%d not found", id)
			return "", ErrLocationNotFound
		}
		s.logger.Error("LocationName: repository error: %v", err)
		return "", fmt.Errorf("%w: LocationName - repository error: %v", ErrInternal, err)
	}
	return loc.Name, nil
}
