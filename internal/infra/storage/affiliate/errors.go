package affiliate

import "errors"

var (
	// ErrLinkNotFound возвращается, когда реферальная ссылка не найдена
	ErrLinkNotFound = errors.New("affiliate.repository: link not found")

	// ErrURLTaken адрес ссылки уже занят
	ErrURLTaken = errors.New("affiliate.repository: custom url already taken")

	// ErrCommissionNotFound возвращается, когда начисление не найдено
	ErrCommissionNotFound = errors.New("affiliate.repository: commission transaction not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("affiliate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("affiliate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("affiliate.repository: failed to scan row")
)
