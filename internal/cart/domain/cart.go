package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one pending line: a quantity of a product for one user.
// Lines are unique per (user, product).
type CartItem struct {
	UserID    string
	ProductID string
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line is a cart item joined with current product data for display.
// Subtotal is quantity times the product's current unit price.
type Line struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Stock     int32
	Quantity  int32
	Subtotal  decimal.Decimal
}

type Cart struct {
	UserID string
	Lines  []Line
	Total  decimal.Decimal
}
