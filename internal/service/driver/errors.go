package driver

import "errors"

var (
	// ErrInvalidDriverCode код водителя не входит в список разрешенных
	ErrInvalidDriverCode = errors.New("invalid driver code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
