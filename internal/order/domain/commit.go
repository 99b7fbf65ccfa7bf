package domain

import (
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// CommitLine is one cart line joined with the product row as read inside
// the commit transaction, after the row has been locked.
type CommitLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Available int32
	Quantity  int32
}

// BuildOrder turns locked cart lines into an order ready to persist. Every
// line's quantity must be covered by Available; the first shortfall aborts
// the whole build so the caller commits nothing. Prices and the total are
// taken from the lines as they are now, not from any earlier view.
func BuildOrder(userID string, shipping ShippingDetails, method PaymentMethod, lines []CommitLine) (Order, error) {
	items := make([]OrderItem, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if line.Available < line.Quantity {
			return Order{}, &catalogdomain.InsufficientStockError{
				ProductID: line.ProductID,
				Name:      line.Name,
				Available: line.Available,
			}
		}

		items = append(items, OrderItem{
			ProductID:       line.ProductID,
			Name:            line.Name,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.UnitPrice,
		})
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity)))
	}

	return Order{
		UserID:        userID,
		TotalPrice:    total,
		Shipping:      shipping,
		PaymentMethod: method,
		Items:         items,
	}, nil
}
