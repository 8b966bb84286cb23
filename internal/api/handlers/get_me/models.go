package get_me

import "github.com/shopspring/decimal"

// BalanceResponse начисленные комиссии пользователя
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
