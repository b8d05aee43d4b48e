package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryBreads   Category = "Breads"
	CategoryPastries Category = "Pastries"
	CategoryCakes    Category = "Cakes"
)

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	InStock     bool            `json:"inStock"`
}
