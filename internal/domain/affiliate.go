package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionStatus статус начисления комиссии
type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "pending"
	CommissionProcessed CommissionStatus = "processed"
)

// AffiliateLink реферальная ссылка пользователя
type AffiliateLink struct {
	ID              int64
	UserID          int64
	CustomURL       string
	CommissionRate  decimal.Decimal // Проценты, 0..100
	IsActive        bool
	Clicks          int64
	TotalCommission decimal.Decimal
	CreatedAt       time.Time
}

// CommissionFor сумма комиссии с цены заказа, округленная до центов
func (l *AffiliateLink) CommissionFor(price decimal.Decimal) decimal.Decimal {
	return price.Mul(l.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}

// CommissionTransaction начисление комиссии по бронированию
type CommissionTransaction struct {
	ID              int64
	AffiliateLinkID int64
	BookingID       int64
	Amount          decimal.Decimal
	Status          CommissionStatus
	CreatedAt       time.Time
	ProcessedAt     *time.Time
}

// IsProcessed начисление уже проведено
func (t *CommissionTransaction) IsProcessed() bool {
	return t.Status == CommissionProcessed
}
