package affiliate

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/BBQ-RentalService/internal/domain"
)

// AffiliateRepository интерфейс репозитория ссылок и начислений
type AffiliateRepository interface {
	CreateLink(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error)
	GetLinkByID(ctx context.Context, id int64) (*domain.AffiliateLink, error)
	GetLinkByURL(ctx context.Context, customURL string) (*domain.AffiliateLink, error)
	ListLinks(ctx context.Context) ([]*domain.AffiliateLink, error)
	IncrementClicks(ctx context.Context, id int64) error
	AddCommission(ctx context.Context, id int64, amount decimal.Decimal) error
	GetCommission(ctx context.Context, id int64) (*domain.CommissionTransaction, error)
	ListCommissions(ctx context.Context, status *domain.CommissionStatus) ([]*domain.CommissionTransaction, error)
	MarkProcessed(ctx context.Context, id int64, processedAt time.Time) error
}

// UserRepository владелец ссылки и его баланс
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	AddBalance(ctx context.Context, id int64, amount decimal.Decimal) error
}

// BookingRepository отметка о выплаченной комиссии
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик проведенных начислений
type Metrics interface {
	CommissionProcessed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
