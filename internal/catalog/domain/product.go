package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used when a seller creates a product without an image.
const DefaultImageURL = "https://t3.ftcdn.net/jpg/04/60/01/36/360_F_460013622_6xF8uN6ubMvLx0tAJECBHfKPoNOR5cRa.jpg"

type Product struct {
	ID          string
	SellerID    string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int32
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InsufficientStockError names the product that cannot cover a requested
// quantity and how many units are actually available.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: only %d available", e.Name, e.Available)
}
