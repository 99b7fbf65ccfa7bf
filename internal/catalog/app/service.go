package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dimasqi/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int32
	ImageURL    string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return ErrInvalidInput
	}
	if in.Stock < 0 {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, sellerID string, in ProductInput) (domain.Product, error) {
	if strings.TrimSpace(sellerID) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}

	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		image = domain.DefaultImageURL
	}

	p := domain.Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    image,
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, query, limit, cursor)
}

func (s *Service) ListSellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error) {
	if strings.TrimSpace(sellerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListBySeller(ctx, sellerID)
}

// UpdateProduct applies in to the product, provided sellerID owns it.
func (s *Service) UpdateProduct(ctx context.Context, sellerID, productID string, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}

	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if p.SellerID != sellerID {
		return domain.Product{}, ErrPermissionDenied
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	if strings.TrimSpace(in.ImageURL) != "" {
		p.ImageURL = strings.TrimSpace(in.ImageURL)
	}

	return s.repo.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, sellerID, productID string) error {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID != sellerID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, p.ID)
}
