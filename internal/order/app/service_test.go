package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dimasqi/storefront/internal/order/domain"
)

type fakeOrderRepo struct {
	orders map[string]domain.Order // orderID -> order

	commits int
}

func (f *fakeOrderRepo) CommitCartTx(ctx context.Context, userID string, shipping domain.ShippingDetails, method domain.PaymentMethod) (domain.Order, error) {
	f.commits++
	return domain.Order{ID: "o1", UserID: userID, Shipping: shipping, PaymentMethod: method}, nil
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Get(ctx context.Context, userID, orderID string) (domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func TestCommitCart(t *testing.T) {
	shipping := domain.ShippingDetails{Address: "1 Main St", City: "Springfield", State: "IL", PostalCode: "62701", Country: "US"}

	t.Run("empty user id -> invalid input", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		svc := NewService(repo)

		_, err := svc.CommitCart(context.Background(), " ", shipping, domain.PaymentCreditCard)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v", err)
		}
		if repo.commits != 0 {
			t.Fatalf("commit ran anyway")
		}
	})

	t.Run("unknown payment method -> invalid input", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		svc := NewService(repo)

		_, err := svc.CommitCart(context.Background(), "u1", shipping, domain.PaymentMethod("check"))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("valid request reaches the repo", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		svc := NewService(repo)

		o, err := svc.CommitCart(context.Background(), "u1", shipping, domain.PaymentPaypal)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if o.ID != "o1" || repo.commits != 1 {
			t.Fatalf("order %+v, commits %d", o, repo.commits)
		}
	})
}

func TestGetOrder(t *testing.T) {
	repo := &fakeOrderRepo{orders: map[string]domain.Order{
		"o1": {ID: "o1", UserID: "u1"},
	}}
	svc := NewService(repo)

	t.Run("owner sees the order", func(t *testing.T) {
		o, err := svc.GetOrder(context.Background(), "u1", "o1")
		if err != nil || o.ID != "o1" {
			t.Fatalf("order %+v, err %v", o, err)
		}
	})

	t.Run("someone else's order -> not found", func(t *testing.T) {
		_, err := svc.GetOrder(context.Background(), "u2", "o1")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("blank order id -> invalid input", func(t *testing.T) {
		_, err := svc.GetOrder(context.Background(), "u1", "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v", err)
		}
	})
}
