package domain

import "github.com/shopspring/decimal"

// CartItem is a product snapshot taken when it was first added, plus the
// selected quantity. Quantity is always at least 1; absence means removal.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price x quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSummary is a read-only view of the cart handed to the view layer.
type CartSummary struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func TotalItems(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func TotalPrice(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
