package weather

import "errors"

var (
	// ErrNotConfigured не задан API ключ
	ErrNotConfigured = errors.New("weather client: api key is not configured")

	// ErrUpstream сервис погоды вернул ошибку или недоступен
	ErrUpstream = errors.New("weather client: upstream error")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("weather client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("weather client: invalid response")
)
