package identity

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUsernameTaken имя пользователя уже занято
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials неверное имя пользователя или пароль
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
