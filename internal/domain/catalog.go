package domain

import "github.com/shopspring/decimal"

// Location пляж, куда доставляется BBQ
type Location struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
}

// Package пакет услуг (только BBQ, с едой, с алкоголем и т.д.)
type Package struct {
	ID              int64
	Name            string
	Description     string
	Price           decimal.Decimal
	IsVegetarian    bool
	IncludesAlcohol bool
}
