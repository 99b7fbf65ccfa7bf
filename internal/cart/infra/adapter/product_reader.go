package adapter

import (
	"context"

	catalogapp "github.com/dimasqi/storefront/internal/catalog/app"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
)

// CatalogServiceReader exposes the catalog service through the cart's
// ProductReader port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) Product(ctx context.Context, id string) (catalogdomain.Product, error) {
	return r.svc.GetProduct(ctx, id)
}
