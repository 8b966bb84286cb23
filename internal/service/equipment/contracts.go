package equipment

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, status *domain.EquipmentStatus) ([]*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
}

// BookingRepository обратная ссылка бронирования на единицу
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityNotifier сброс кеша и рассылка доступности дня
type AvailabilityNotifier interface {
	Refresh(ctx context.Context, date time.Time)
}

// Metrics счетчик переходов состояния оборудования
type Metrics interface {
	EquipmentTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
