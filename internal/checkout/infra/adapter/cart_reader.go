package adapter

import (
	"context"

	cartapp "github.com/dimasqi/storefront/internal/cart/app"
	checkoutdomain "github.com/dimasqi/storefront/internal/checkout/domain"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) Lines(ctx context.Context, userID string) ([]checkoutdomain.QuoteLine, error) {
	cart, err := r.svc.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]checkoutdomain.QuoteLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, checkoutdomain.QuoteLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.Subtotal,
		})
	}
	return lines, nil
}
