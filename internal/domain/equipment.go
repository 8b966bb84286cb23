package domain

import (
	"fmt"
	"time"
)

// EquipmentStatus физическое состояние BBQ
type EquipmentStatus string

const (
	EquipmentAvailable       EquipmentStatus = "available"
	EquipmentInUse           EquipmentStatus = "in_use"
	EquipmentCleaning        EquipmentStatus = "cleaning"
	EquipmentMaintenance     EquipmentStatus = "maintenance"
	EquipmentTransitDelivery EquipmentStatus = "transit_delivery"
	EquipmentTransitPickup   EquipmentStatus = "transit_pickup"
)

var equipmentStatuses = map[EquipmentStatus]struct{}{
	EquipmentAvailable:       {},
	EquipmentInUse:           {},
	EquipmentCleaning:        {},
	EquipmentMaintenance:     {},
	EquipmentTransitDelivery: {},
	EquipmentTransitPickup:   {},
}

// ParseEquipmentStatus валидирует строку статуса оборудования
func ParseEquipmentStatus(s string) (EquipmentStatus, error) {
	status := EquipmentStatus(s)
	if _, ok := equipmentStatuses[status]; !ok {
		return "", fmt.Errorf("%w: equipment status %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Equipment единица оборудования (BBQ)
type Equipment struct {
	ID               int64
	Name             string
	Status           EquipmentStatus
	CurrentBookingID *int64
	LastCleaned      *time.Time
	LastMaintenance  *time.Time
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAvailable единицу можно закрепить за бронированием
func (e *Equipment) IsAvailable() bool {
	return e.Status == EquipmentAvailable
}

// IsLinked единица закреплена за бронированием
func (e *Equipment) IsLinked() bool {
	return e.CurrentBookingID != nil
}

// CanRelease единица на руках у клиента или в пути
func (e *Equipment) CanRelease() bool {
	switch e.Status {
	case EquipmentInUse, EquipmentTransitDelivery, EquipmentTransitPickup:
		return true
	default:
		return false
	}
}

// KeepsBookingLink статусы, в которых связь с бронированием сохраняется
func (s EquipmentStatus) KeepsBookingLink() bool {
	switch s {
	case EquipmentInUse, EquipmentTransitDelivery, EquipmentTransitPickup:
		return true
	default:
		return false
	}
}

// CheckAdminOverride проверяет ручную смену статуса администратором.
// in_use выставляется только через закрепление за бронированием,
// транзитные статусы имеют смысл только для закрепленной единицы.
func CheckAdminOverride(e *Equipment, to EquipmentStatus) error {
	if to == EquipmentInUse && e.Status != EquipmentInUse {
		return fmt.Errorf("%w: in_use is set by assignment only", ErrInvalidTransition)
	}
	if (to == EquipmentTransitDelivery || to == EquipmentTransitPickup) && !e.IsLinked() {
		return fmt.Errorf("%w: %s requires an assigned booking", ErrInvalidTransition, to)
	}
	return nil
}

// ApplyStatus меняет статус и проставляет отметки времени:
// cleaning -> available ставит LastCleaned, maintenance -> available ставит LastMaintenance.
// Повторный перевод в тот же статус ничего не отмечает.
func (e *Equipment) ApplyStatus(to EquipmentStatus, now time.Time) {
	from := e.Status
	if from == to {
		return
	}
	if to == EquipmentAvailable {
		switch from {
		case EquipmentCleaning:
			e.LastCleaned = &now
		case EquipmentMaintenance:
			e.LastMaintenance = &now
		}
	}
	e.Status = to
	if !to.KeepsBookingLink() {
		e.CurrentBookingID = nil
	}
}
