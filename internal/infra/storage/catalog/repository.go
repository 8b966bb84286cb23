package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
	"github.com/m04kA/BBQ-RentalService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-RentalService/pkg/psqlbuilder"
)

// Repository справочник пляжей и пакетов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Seed заполняет справочники; существующие id не перезаписываются
func (r *Repository) Seed(ctx context.Context, locations []domain.Location, packages []domain.Package) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(locations) > 0 {
		insert := psqlbuilder.Insert("locations").Columns("id", "name", "description", "image_url")
		for _, l := range locations {
			insert = insert.Values(l.ID, l.Name, l.Description, l.ImageURL)
		}
		query, args, err := insert.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("%w: Seed - build locations insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Seed - insert locations: %v", ErrExecQuery, err)
		}
	}

	if len(packages) > 0 {
		insert := psqlbuilder.Insert("packages").
			Columns("id", "name", "description", "price", "is_vegetarian", "includes_alcohol")
		for _, p := range packages {
			insert = insert.Values(p.ID, p.Name, p.Description, p.Price, p.IsVegetarian, p.IncludesAlcohol)
		}
		query, args, err := insert.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
		if err != nil {
			return fmt.Errorf("%w: Seed - build packages insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Seed - insert packages: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// ListLocations все пляжи по порядку id
func (r *Repository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "description", "image_url").
		From("locations").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// ListPackages все пакеты по порядку id
func (r *Repository) ListPackages(ctx context.Context) ([]domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("packages").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]domain.Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPackages - scan row: %v", ErrScanRow, err)
		}
		packages = append(packages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPackages - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// GetLocation пляж по id
func (r *Repository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "description", "image_url").
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - build select query: %v", ErrBuildQuery, err)
	}

	var l domain.Location
	err = executor.QueryRowContext(ctx, query, args...).Scan(&l.ID, &l.Name, &l.Description, &l.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - scan: %v", ErrScanRow, err)
	}

	return &l, nil
}

// GetPackage пакет по id
func (r *Repository) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPackage(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - scan: %v", ErrScanRow, err)
	}

	return p, nil
}

var packageColumns = []string{"id", "name", "description", "price", "is_vegetarian", "includes_alcohol"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	var p domain.Package
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsVegetarian, &p.IncludesAlcohol); err != nil {
		return nil, err
	}
	return &p, nil
}
