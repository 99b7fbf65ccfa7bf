package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimasqi/storefront/internal/checkout/domain"
	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart aborts a summary or commit when there is nothing to buy;
	// the caller routes the user back to the catalog.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrIncompleteCheckout means the summary step was reached without
	// staged shipping/payment data; the caller routes back to details.
	ErrIncompleteCheckout = errors.New("checkout details missing")
)

// Staging is the per-session scratch area holding shipping/payment data
// between the details and summary steps.
type Staging interface {
	Put(ctx context.Context, sessionID string, details domain.StagedDetails) error
	// Get reports false when nothing is staged for the session.
	Get(ctx context.Context, sessionID string) (domain.StagedDetails, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type CartReader interface {
	Lines(ctx context.Context, userID string) ([]domain.QuoteLine, error)
}

type OrderCommitter interface {
	Commit(ctx context.Context, userID string, shipping orderdomain.ShippingDetails, method orderdomain.PaymentMethod) (orderdomain.Order, error)
}

type Service struct {
	staging Staging
	cart    CartReader
	orders  OrderCommitter
}

func NewService(staging Staging, cart CartReader, orders OrderCommitter) *Service {
	return &Service{
		staging: staging,
		cart:    cart,
		orders:  orders,
	}
}

// SubmitDetails validates the details form and stages the bundles,
// replacing whatever was staged before. Nothing is staged on failure.
func (s *Service) SubmitDetails(ctx context.Context, sessionID string, form DetailsForm) error {
	shipping, method, err := ValidateDetails(form)
	if err != nil {
		return err
	}

	return s.staging.Put(ctx, sessionID, domain.StagedDetails{
		Shipping: shipping,
		Payment:  method,
	})
}

// StagedDetails returns whatever is currently staged so a re-entered
// details form can be pre-populated; ok is false when nothing is staged.
func (s *Service) StagedDetails(ctx context.Context, sessionID string) (domain.StagedDetails, bool, error) {
	return s.staging.Get(ctx, sessionID)
}

// Summary produces the review quote from current prices. It requires
// staged details and a non-empty cart, mirroring the commit guards.
func (s *Service) Summary(ctx context.Context, userID, sessionID string) (domain.StagedDetails, domain.Quote, error) {
	staged, ok, err := s.staging.Get(ctx, sessionID)
	if err != nil {
		return domain.StagedDetails{}, domain.Quote{}, fmt.Errorf("read staged details: %w", err)
	}
	if !ok {
		return domain.StagedDetails{}, domain.Quote{}, ErrIncompleteCheckout
	}

	quote, err := s.quote(ctx, userID)
	if err != nil {
		return domain.StagedDetails{}, domain.Quote{}, err
	}
	return staged, quote, nil
}

// Commit converts the cart into an order. The authoritative stock check
// and total happen inside the committer's transaction against current
// data; staged details are cleared only after the order exists.
func (s *Service) Commit(ctx context.Context, userID, sessionID string) (domain.CommitResult, error) {
	staged, ok, err := s.staging.Get(ctx, sessionID)
	if err != nil {
		return domain.CommitResult{}, fmt.Errorf("read staged details: %w", err)
	}
	if !ok {
		return domain.CommitResult{}, ErrIncompleteCheckout
	}

	lines, err := s.cart.Lines(ctx, userID)
	if err != nil {
		return domain.CommitResult{}, err
	}
	if len(lines) == 0 {
		return domain.CommitResult{}, ErrEmptyCart
	}

	order, err := s.orders.Commit(ctx, userID, staged.Shipping, staged.Payment)
	if err != nil {
		return domain.CommitResult{}, err
	}

	// The order is durable at this point; if the clear fails the leftover
	// bundle is simply replaced by the next details submission.
	_ = s.staging.Clear(ctx, sessionID)

	return domain.CommitResult{OrderID: order.ID, Total: order.TotalPrice}, nil
}

// Abandon drops any staged details for the session, e.g. on logout.
func (s *Service) Abandon(ctx context.Context, sessionID string) error {
	return s.staging.Clear(ctx, sessionID)
}

func (s *Service) quote(ctx context.Context, userID string) (domain.Quote, error) {
	lines, err := s.cart.Lines(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(lines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}

	return domain.Quote{Lines: lines, Total: total}, nil
}
