package domain

import "github.com/shopspring/decimal"

// Значения по умолчанию для пула оборудования и расписания
const (
	DefaultMaxUnits        = 1
	DefaultTimezone        = "Europe/Malta"
	DefaultBBQCount        = 1
	DefaultCommissionRate  = 10
	DefaultCleanupAmount   = "5.00"
	MaxCommissionRate      = 100
	MinCommissionRate      = 0
	MaxBBQCountPerBooking  = 10
	MaxNotesLength         = 500
	MaxEquipmentNameLength = 100
)

// DefaultTimeSlots слоты дня по умолчанию; между слотами час на чистку оборудования
var DefaultTimeSlots = []string{
	"12:00-15:00",
	"16:00-19:00",
	"20:00-23:00",
}

// Валидация учетных данных
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
	MinPhoneLength    = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses статусы, которые занимают оборудование в слоте
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
}

// DefaultCleanupDecimal фиксированный взнос на уборку пляжа
func DefaultCleanupDecimal() decimal.Decimal {
	return decimal.RequireFromString(DefaultCleanupAmount)
}
