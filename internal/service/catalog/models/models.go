package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// LocationResponse пляж
type LocationResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// PackageResponse пакет услуг
type PackageResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	IsVegetarian    bool            `json:"isVegetarian"`
	IncludesAlcohol bool            `json:"includesAlcohol"`
}

// FromDomainLocations конвертирует список пляжей в DTO
func FromDomainLocations(list []domain.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, LocationResponse{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			ImageURL:    l.ImageURL,
		})
	}
	return out
}

// FromDomainPackages конвертирует список пакетов в DTO
func FromDomainPackages(list []domain.Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PackageResponse{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			Price:           p.Price,
			IsVegetarian:    p.IsVegetarian,
			IncludesAlcohol: p.IncludesAlcohol,
		})
	}
	return out
}
