package app

import (
	"context"

	"github.com/dimasqi/storefront/internal/order/domain"
)

type OrderRepo interface {
	// CommitCartTx atomically converts the user's cart into an order:
	// stock re-check, order + item inserts, stock decrements and the cart
	// delete all happen in one transaction or not at all.
	CommitCartTx(ctx context.Context, userID string, shipping domain.ShippingDetails, method domain.PaymentMethod) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (domain.Order, error)
}
