package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidTimeSlot слот не входит в расписание
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDate дата не разбирается как календарный день
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrUserNotFound пользователь сессии не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrLocationNotFound пляж не найден
	ErrLocationNotFound = errors.New("create_booking: location not found")

	// ErrPackageNotFound пакет не найден
	ErrPackageNotFound = errors.New("create_booking: package not found")

	// ErrAffiliateLinkNotFound ссылка не найдена или отключена
	ErrAffiliateLinkNotFound = errors.New("create_booking: affiliate link not found")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает оборудования
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
