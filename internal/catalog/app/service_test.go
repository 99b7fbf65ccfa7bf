package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dimasqi/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

type fakeRepo struct {
	products map[string]domain.Product
	updated  *domain.Product
	deleted  []string
}

func newFakeRepo(products ...domain.Product) *fakeRepo {
	r := &fakeRepo{products: map[string]domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = "p-created"
	r.products[p.ID] = p
	return p, nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.products[p.ID] = p
	r.updated = &p
	return p, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.products, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	return nil, "", nil
}

func (r *fakeRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "seller-1", ProductInput{
			Name:  "   ",
			Price: decimal.NewFromInt(10),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "seller-1", ProductInput{
			Name:  "Keyboard",
			Price: decimal.NewFromInt(-1),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "seller-1", ProductInput{
			Name:  "Keyboard",
			Price: decimal.NewFromInt(10),
			Stock: -3,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty seller -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), "  ", ProductInput{
			Name:  "Keyboard",
			Price: decimal.NewFromInt(10),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCreateProductDefaultsImage(t *testing.T) {
	svc := NewService(newFakeRepo())

	p, err := svc.CreateProduct(context.Background(), "seller-1", ProductInput{
		Name:  "Keyboard",
		Price: decimal.RequireFromString("49.99"),
		Stock: 5,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if p.ImageURL != domain.DefaultImageURL {
		t.Fatalf("expected default image url, got %q", p.ImageURL)
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	existing := domain.Product{
		ID:       "p-1",
		SellerID: "seller-1",
		Name:     "Keyboard",
		Price:    decimal.NewFromInt(10),
		Stock:    5,
		ImageURL: domain.DefaultImageURL,
	}

	t.Run("foreign seller -> permission denied, no mutation", func(t *testing.T) {
		repo := newFakeRepo(existing)
		svc := NewService(repo)

		_, err := svc.UpdateProduct(context.Background(), "seller-2", "p-1", ProductInput{
			Name:  "Stolen",
			Price: decimal.NewFromInt(1),
		})
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
		if repo.updated != nil {
			t.Fatalf("repo.Update was called: %+v", repo.updated)
		}
		if got := repo.products["p-1"].Name; got != "Keyboard" {
			t.Fatalf("product mutated, name=%q", got)
		}
	})

	t.Run("owner -> fields persisted", func(t *testing.T) {
		repo := newFakeRepo(existing)
		svc := NewService(repo)

		p, err := svc.UpdateProduct(context.Background(), "seller-1", "p-1", ProductInput{
			Name:  "Mechanical Keyboard",
			Price: decimal.RequireFromString("59.90"),
			Stock: 7,
		})
		if err != nil {
			t.Fatalf("UpdateProduct failed: %v", err)
		}
		if p.Name != "Mechanical Keyboard" || p.Stock != 7 {
			t.Fatalf("unexpected product: %+v", p)
		}
		if !p.Price.Equal(decimal.RequireFromString("59.90")) {
			t.Fatalf("price not persisted: %s", p.Price)
		}
		// blank image keeps the prior value
		if p.ImageURL != domain.DefaultImageURL {
			t.Fatalf("image changed unexpectedly: %q", p.ImageURL)
		}
	})

	t.Run("missing product -> not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(existing))
		_, err := svc.UpdateProduct(context.Background(), "seller-1", "p-404", ProductInput{
			Name:  "Whatever",
			Price: decimal.NewFromInt(1),
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteProductOwnership(t *testing.T) {
	existing := domain.Product{ID: "p-1", SellerID: "seller-1", Name: "Keyboard", Price: decimal.NewFromInt(10)}

	t.Run("foreign seller -> permission denied", func(t *testing.T) {
		repo := newFakeRepo(existing)
		svc := NewService(repo)

		err := svc.DeleteProduct(context.Background(), "seller-2", "p-1")
		if !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
		if len(repo.deleted) != 0 {
			t.Fatalf("delete reached repo: %v", repo.deleted)
		}
	})

	t.Run("owner -> deleted", func(t *testing.T) {
		repo := newFakeRepo(existing)
		svc := NewService(repo)

		if err := svc.DeleteProduct(context.Background(), "seller-1", "p-1"); err != nil {
			t.Fatalf("DeleteProduct failed: %v", err)
		}
		if len(repo.deleted) != 1 || repo.deleted[0] != "p-1" {
			t.Fatalf("unexpected deletions: %v", repo.deleted)
		}
	})
}
