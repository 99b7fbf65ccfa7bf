package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dimasqi/storefront/internal/cart/domain"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	items map[string]domain.CartItem // keyed by userID + "/" + productID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: map[string]domain.CartItem{}}
}

func key(userID, productID string) string { return userID + "/" + productID }

func (r *fakeCartRepo) Get(ctx context.Context, userID, productID string) (domain.CartItem, error) {
	it, ok := r.items[key(userID, productID)]
	if !ok {
		return domain.CartItem{}, ErrNotFound
	}
	return it, nil
}

func (r *fakeCartRepo) Upsert(ctx context.Context, item domain.CartItem) error {
	r.items[key(item.UserID, item.ProductID)] = item
	return nil
}

func (r *fakeCartRepo) Remove(ctx context.Context, userID, productID string) error {
	k := key(userID, productID)
	if _, ok := r.items[k]; !ok {
		return ErrNotFound
	}
	delete(r.items, k)
	return nil
}

func (r *fakeCartRepo) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeProducts map[string]catalogdomain.Product

func (f fakeProducts) Product(ctx context.Context, id string) (catalogdomain.Product, error) {
	p, ok := f[id]
	if !ok {
		return catalogdomain.Product{}, errors.New("unknown product")
	}
	return p, nil
}

func product(id, name, price string, stock int32) catalogdomain.Product {
	return catalogdomain.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity over stock -> insufficient, cart unchanged", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 3)}, 0)

		err := svc.AddItem(ctx, "u-1", "p-1", 4)

		var stockErr *catalogdomain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Mug", stockErr.Name)
		assert.Equal(t, int32(3), stockErr.Available)
		assert.Empty(t, repo.items)
	})

	t.Run("increment past stock -> insufficient, quantity kept", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 3)}, 0)

		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 2))
		err := svc.AddItem(ctx, "u-1", "p-1", 2)

		var stockErr *catalogdomain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)

		it, err := repo.Get(ctx, "u-1", "p-1")
		require.NoError(t, err)
		assert.Equal(t, int32(2), it.Quantity)
	})

	t.Run("add twice -> one line, summed quantity", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 10)}, 0)

		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 1))
		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 3))

		it, err := repo.Get(ctx, "u-1", "p-1")
		require.NoError(t, err)
		assert.Equal(t, int32(4), it.Quantity)
		assert.Len(t, repo.items, 1)
	})

	t.Run("zero quantity -> invalid", func(t *testing.T) {
		svc := NewService(newFakeCartRepo(), fakeProducts{}, 0)
		assert.ErrorIs(t, svc.AddItem(ctx, "u-1", "p-1", 0), ErrInvalidInput)
	})
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero -> line removed", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 10)}, 0)
		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 2))

		require.NoError(t, svc.SetQuantity(ctx, "u-1", "p-1", 0))
		assert.Empty(t, repo.items)
	})

	t.Run("negative -> line removed", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 10)}, 0)
		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 2))

		require.NoError(t, svc.SetQuantity(ctx, "u-1", "p-1", -5))
		assert.Empty(t, repo.items)
	})

	t.Run("over stock -> insufficient, quantity kept", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 3)}, 0)
		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 2))

		err := svc.SetQuantity(ctx, "u-1", "p-1", 5)
		var stockErr *catalogdomain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)

		it, _ := repo.Get(ctx, "u-1", "p-1")
		assert.Equal(t, int32(2), it.Quantity)
	})

	t.Run("valid -> overwritten", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewService(repo, fakeProducts{"p-1": product("p-1", "Mug", "4.50", 10)}, 0)
		require.NoError(t, svc.AddItem(ctx, "u-1", "p-1", 2))

		require.NoError(t, svc.SetQuantity(ctx, "u-1", "p-1", 7))
		it, _ := repo.Get(ctx, "u-1", "p-1")
		assert.Equal(t, int32(7), it.Quantity)
	})

	t.Run("absent line -> not found", func(t *testing.T) {
		svc := NewService(newFakeCartRepo(), fakeProducts{}, 0)
		assert.ErrorIs(t, svc.SetQuantity(ctx, "u-1", "p-404", 2), ErrNotFound)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("absent -> not found", func(t *testing.T) {
		svc := NewService(newFakeCartRepo(), fakeProducts{}, 0)
		assert.ErrorIs(t, svc.RemoveItem(ctx, "u-1", "p-1"), ErrNotFound)
	})

	t.Run("other user's line stays", func(t *testing.T) {
		repo := newFakeCartRepo()
		products := fakeProducts{"p-1": product("p-1", "Mug", "4.50", 10)}
		svc := NewService(repo, products, 0)
		require.NoError(t, svc.AddItem(ctx, "u-2", "p-1", 1))

		assert.ErrorIs(t, svc.RemoveItem(ctx, "u-1", "p-1"), ErrNotFound)
		assert.Len(t, repo.items, 1)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCartRepo()
	products := fakeProducts{
		"p-a": product("p-a", "Notebook", "10.00", 5),
		"p-b": product("p-b", "Pen", "20.00", 1),
	}
	svc := NewService(repo, products, 2)

	require.NoError(t, svc.AddItem(ctx, "u-1", "p-a", 2))
	require.NoError(t, svc.AddItem(ctx, "u-1", "p-b", 1))

	cart, err := svc.GetCart(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)

	byID := map[string]domain.Line{}
	for _, l := range cart.Lines {
		byID[l.ProductID] = l
	}
	assert.True(t, byID["p-a"].Subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal a = %s", byID["p-a"].Subtotal)
	assert.True(t, byID["p-b"].Subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal b = %s", byID["p-b"].Subtotal)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("40.00")), "total = %s", cart.Total)
}
