package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrReadFile файл каталога не читается
	ErrReadFile = errors.New("catalog: failed to read file")

	// ErrDecode файл каталога не разбирается
	ErrDecode = errors.New("catalog: failed to decode yaml")

	// ErrInvalidEntry некорректная запись каталога
	ErrInvalidEntry = errors.New("catalog: invalid entry")
)

// Catalog справочник пляжей и пакетов
type Catalog struct {
	Locations []domain.Location
	Packages  []domain.Package
}

type fileModel struct {
	Locations []struct {
		ID          int64  `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		ImageURL    string `yaml:"image_url"`
	} `yaml:"locations"`
	Packages []struct {
		ID          int64  `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Vegetarian  bool   `yaml:"vegetarian"`
		Alcohol     bool   `yaml:"alcohol"`
	} `yaml:"packages"`
}

// Load читает каталог из файла; пустой путь - встроенный каталог
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
	}
	return Parse(data)
}

// Default встроенный каталог
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse разбирает YAML каталога и проверяет записи
func Parse(data []byte) (*Catalog, error) {
	var raw fileModel
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c := &Catalog{
		Locations: make([]domain.Location, 0, len(raw.Locations)),
		Packages:  make([]domain.Package, 0, len(raw.Packages)),
	}

	seenLocations := make(map[int64]struct{}, len(raw.Locations))
	for _, l := range raw.Locations {
		if l.ID <= 0 || l.Name == "" {
			return nil, fmt.Errorf("%w: location id=%d name=%q", ErrInvalidEntry, l.ID, l.Name)
		}
		if _, ok := seenLocations[l.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate location id=%d", ErrInvalidEntry, l.ID)
		}
		seenLocations[l.ID] = struct{}{}

		c.Locations = append(c.Locations, domain.Location{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			ImageURL:    l.ImageURL,
		})
	}

	seenPackages := make(map[int64]struct{}, len(raw.Packages))
	for _, p := range raw.Packages {
		if p.ID <= 0 || p.Name == "" {
			return nil, fmt.Errorf("%w: package id=%d name=%q", ErrInvalidEntry, p.ID, p.Name)
		}
		if _, ok := seenPackages[p.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate package id=%d", ErrInvalidEntry, p.ID)
		}
		seenPackages[p.ID] = struct{}{}

		price, err := decimal.NewFromString(p.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("%w: package id=%d price %q", ErrInvalidEntry, p.ID, p.Price)
		}

		c.Packages = append(c.Packages, domain.Package{
			ID:              p.ID,
			Name:            p.Name,
			Description:     p.Description,
			Price:           price,
			IsVegetarian:    p.Vegetarian,
			IncludesAlcohol: p.Alcohol,
		})
	}

	return c, nil
}
