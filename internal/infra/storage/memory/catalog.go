package memory

import (
	"context"
	"sort"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	catalogRepo "github.com/m04kA/BBQ-RentalService/internal/infra/storage/catalog"
)

// CatalogRepository справочник пляжей и пакетов в памяти
type CatalogRepository struct {
	s *Store
}

// Seed добавляет записи; существующие id не перезаписываются
func (r *CatalogRepository) Seed(ctx context.Context, locations []domain.Location, packages []domain.Package) error {
	return r.s.run(ctx, func(_ *state) error {
		for _, l := range locations {
			if _, ok := r.findLocation(l.ID); !ok {
				r.s.locations = append(r.s.locations, l)
			}
		}
		for _, p := range packages {
			if _, ok := r.findPackage(p.ID); !ok {
				r.s.packages = append(r.s.packages, p)
			}
		}
		sort.Slice(r.s.locations, func(i, j int) bool { return r.s.locations[i].ID < r.s.locations[j].ID })
		sort.Slice(r.s.packages, func(i, j int) bool { return r.s.packages[i].ID < r.s.packages[j].ID })
		return nil
	})
}

// ListLocations все пляжи
func (r *CatalogRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	err := r.s.run(ctx, func(_ *state) error {
		out = make([]domain.Location, len(r.s.locations))
		copy(out, r.s.locations)
		return nil
	})
	return out, err
}

// ListPackages все пакеты
func (r *CatalogRepository) ListPackages(ctx context.Context) ([]domain.Package, error) {
	var out []domain.Package
	err := r.s.run(ctx, func(_ *state) error {
		out = make([]domain.Package, len(r.s.packages))
		copy(out, r.s.packages)
		return nil
	})
	return out, err
}

// GetLocation пляж по id
func (r *CatalogRepository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	var out *domain.Location
	err := r.s.run(ctx, func(_ *state) error {
		l, ok := r.findLocation(id)
		if !ok {
			return catalogRepo.ErrLocationNotFound
		}
		out = &l
		return nil
	})
	return out, err
}

// GetPackage пакет по id
func (r *CatalogRepository) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	var out *domain.Package
	err := r.s.run(ctx, func(_ *state) error {
		p, ok := r.findPackage(id)
		if !ok {
			return catalogRepo.ErrPackageNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *CatalogRepository) findLocation(id int64) (domain.Location, bool) {
	for _, l := range r.s.locations {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Location{}, false
}

func (r *CatalogRepository) findPackage(id int64) (domain.Package, bool) {
	for _, p := range r.s.packages {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Package{}, false
}
