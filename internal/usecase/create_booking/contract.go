package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// UserRepository источник контактов клиента
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CatalogRepository справочник пляжей и пакетов
type CatalogRepository interface {
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	GetPackage(ctx context.Context, id int64) (*domain.Package, error)
}

// AffiliateRepository реферальные ссылки и начисления
type AffiliateRepository interface {
	GetLinkByID(ctx context.Context, id int64) (*domain.AffiliateLink, error)
	CreateCommission(ctx context.Context, tx *domain.CommissionTransaction) (*domain.CommissionTransaction, error)
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

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated(timeSlot string)
	BookingRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
