package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dimasqi/storefront/internal/order/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("order not found")

	// ErrNothingToCommit means the commit transaction found no cart lines.
	ErrNothingToCommit = errors.New("no cart items to commit")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CommitCart(ctx context.Context, userID string, shipping domain.ShippingDetails, method domain.PaymentMethod) (domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	if !method.Valid() {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.CommitCartTx(ctx, userID, shipping, method)
}

func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (domain.Order, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(orderID) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, userID, orderID)
}
