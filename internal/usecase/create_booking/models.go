package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64 // Пользователь сессии
	LocationID int64
	PackageID  int64
	Date       string // "YYYY-MM-DD" или ISO 8601
	TimeSlot   string // "HH:MM-HH:MM"

	// Пустые значения берутся из профиля пользователя
	CustomerName  string
	CustomerPhone string

	BBQCount            *int // По умолчанию 1
	CleanupContribution bool
	CleanupAmount       *decimal.Decimal // По умолчанию фиксированный взнос из конфига
	AffiliateLinkID     *int64
	Notes               *string
}

// Response созданное бронирование и начисление комиссии, если была ссылка
type Response struct {
	Booking    *domain.Booking
	Commission *domain.CommissionTransaction
}

// Settings параметры бронирования из конфигурации
type Settings struct {
	Slots            *domain.SlotTable
	MaxUnits         int
	Location         *time.Location
	AllowOverbooking bool
	CleanupAmount    decimal.Decimal
}

// draft проверенный запрос
type draft struct {
	date          time.Time
	timeSlot      domain.TimeSlot
	bbqCount      int
	cleanupAmount *decimal.Decimal
}
