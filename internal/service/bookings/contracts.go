package bookings

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// EquipmentRepository единица, закрепленная за бронированием
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityNotifier сброс кеша и рассылка доступности дня
type AvailabilityNotifier interface {
	Refresh(ctx context.Context, date time.Time)
}

// Publisher события бронирований
type Publisher interface {
	PublishBooking(ctx context.Context, eventType string, b *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
