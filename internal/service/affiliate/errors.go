package affiliate

import "errors"

var (
	// ErrLinkNotFound ссылка не найдена или отключена
	ErrLinkNotFound = errors.New("affiliate link not found")

	// ErrURLTaken адрес ссылки уже занят
	ErrURLTaken = errors.New("custom url already taken")

	// ErrUserNotFound владелец ссылки не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrCommissionNotFound начисление не найдено
	ErrCommissionNotFound = errors.New("commission transaction not found")

	// ErrAlreadyProcessed начисление уже проведено
	ErrAlreadyProcessed = errors.New("commission already processed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
