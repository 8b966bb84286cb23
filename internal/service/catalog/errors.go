package catalog

import "errors"

var (
	// ErrLocationNotFound пляж не найден
	ErrLocationNotFound = errors.New("location not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
