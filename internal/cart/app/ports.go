package app

import (
	"context"

	"github.com/dimasqi/storefront/internal/cart/domain"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
)

type CartRepo interface {
	// Get returns ErrNotFound when no line exists for (userID, productID).
	Get(ctx context.Context, userID, productID string) (domain.CartItem, error)
	Upsert(ctx context.Context, item domain.CartItem) error
	// Remove returns ErrNotFound when nothing was deleted.
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]domain.CartItem, error)
}

// ProductReader is the slice of the catalog the cart needs: current price
// and stock for validation and subtotals.
type ProductReader interface {
	Product(ctx context.Context, id string) (catalogdomain.Product, error)
}
