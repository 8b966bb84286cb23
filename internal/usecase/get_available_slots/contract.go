package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// AvailabilityCache снимок доступности по дням (Redis)
type AvailabilityCache interface {
	Get(ctx context.Context, date time.Time) ([]domain.SlotAvailability, bool, error)
	Set(ctx context.Context, date time.Time, slots []domain.SlotAvailability) error
	Invalidate(ctx context.Context, date time.Time) error
}

// Publisher уведомления об изменении доступности (Kafka)
type Publisher interface {
	PublishAvailability(ctx context.Context, date time.Time, slots []domain.SlotAvailability) error
}

// Metrics счетчик попаданий в кеш
type Metrics interface {
	ObserveCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
