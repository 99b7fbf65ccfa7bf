package adapter

import (
	"context"
	"errors"

	checkoutapp "github.com/dimasqi/storefront/internal/checkout/app"
	orderapp "github.com/dimasqi/storefront/internal/order/app"
	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
)

type OrderServiceCommitter struct {
	svc *orderapp.Service
}

func NewOrderServiceCommitter(svc *orderapp.Service) *OrderServiceCommitter {
	return &OrderServiceCommitter{svc: svc}
}

func (c *OrderServiceCommitter) Commit(ctx context.Context, userID string, shipping orderdomain.ShippingDetails, method orderdomain.PaymentMethod) (orderdomain.Order, error) {
	order, err := c.svc.CommitCart(ctx, userID, shipping, method)
	if errors.Is(err, orderapp.ErrNothingToCommit) {
		// The cart emptied between the workflow's guard and the
		// transaction; same outcome for the user.
		return orderdomain.Order{}, checkoutapp.ErrEmptyCart
	}
	return order, err
}
