package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User учетная запись клиента или администратора
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Phone        string
	IsAdmin      bool
	Balance      decimal.Decimal // Начисляется только обработкой комиссий, не меньше 0
	CreatedAt    time.Time
}
