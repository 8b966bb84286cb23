package equipment

import "errors"

var (
	// ErrEquipmentNotFound единица оборудования не найдена
	ErrEquipmentNotFound = errors.New("equipment not found")

	// ErrBookingNotFound бронирование для закрепления не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrUnitNotAvailable единица не в статусе available
	ErrUnitNotAvailable = errors.New("equipment unit is not available")

	// ErrBookingAlreadyAssigned за бронированием уже закреплена единица
	ErrBookingAlreadyAssigned = errors.New("booking already has an assigned unit")

	// ErrBookingNotAssignable отмененное бронирование нельзя обслуживать
	ErrBookingNotAssignable = errors.New("booking cannot be assigned equipment")

	// ErrCannotRelease единица не выдана клиенту и не в пути
	ErrCannotRelease = errors.New("equipment unit is not in use")

	// ErrInvalidTransition ручная смена статуса запрещена
	ErrInvalidTransition = errors.New("invalid equipment status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
