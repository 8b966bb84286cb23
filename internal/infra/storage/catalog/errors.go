package catalog

import "errors"

var (
	// ErrLocationNotFound пляж не найден
	ErrLocationNotFound = errors.New("catalog.repository: location not found")

	// ErrPackageNotFound пакет не найден
	ErrPackageNotFound = errors.New("catalog.repository: package not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
