package app

import (
	"context"

	"github.com/dimasqi/storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
}
