package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimasqi/storefront/internal/cart/domain"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cart item not found")
)

type Service struct {
	repo     CartRepo
	products ProductReader

	maxConcurrent int
}

func NewService(repo CartRepo, products ProductReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		repo:          repo,
		products:      products,
		maxConcurrent: maxConcurrent,
	}
}

// AddItem creates a line for (userID, productID) or increments an existing
// one. The combined quantity must be covered by current stock; otherwise
// nothing is written.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int32) error {
	if quantity < 1 {
		return ErrInvalidInput
	}

	p, err := s.products.Product(ctx, productID)
	if err != nil {
		return err
	}

	var current int32
	existing, err := s.repo.Get(ctx, userID, productID)
	switch {
	case err == nil:
		current = existing.Quantity
	case errors.Is(err, ErrNotFound):
		current = 0
	default:
		return err
	}

	if p.Stock < current+quantity {
		return &catalogdomain.InsufficientStockError{
			ProductID: p.ID,
			Name:      p.Name,
			Available: p.Stock,
		}
	}

	return s.repo.Upsert(ctx, domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  current + quantity,
	})
}

// SetQuantity overwrites a line's quantity. Zero or less deletes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int32) error {
	if _, err := s.repo.Get(ctx, userID, productID); err != nil {
		return err
	}

	if quantity <= 0 {
		return s.repo.Remove(ctx, userID, productID)
	}

	p, err := s.products.Product(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock < quantity {
		return &catalogdomain.InsufficientStockError{
			ProductID: p.ID,
			Name:      p.Name,
			Available: p.Stock,
		}
	}

	return s.repo.Upsert(ctx, domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.repo.Remove(ctx, userID, productID)
}

// GetCart lists the user's lines with subtotals computed from current
// product prices. Product lookups fan out, bounded by maxConcurrent.
func (s *Service) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	lines := make([]domain.Line, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]

			p, err := s.products.Product(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.Line{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: p.Price,
				Stock:     p.Stock,
				Quantity:  it.Quantity,
				Subtotal:  p.Price.Mul(decimal.NewFromInt32(it.Quantity)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Cart{}, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}

	return domain.Cart{
		UserID: userID,
		Lines:  lines,
		Total:  total,
	}, nil
}
