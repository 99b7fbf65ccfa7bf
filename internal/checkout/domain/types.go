package domain

import (
	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

// StagedDetails is the shipping/payment bundle held in session storage
// between the details step and the summary step. It is not yet part of any
// durable order.
type StagedDetails struct {
	Shipping orderdomain.ShippingDetails `json:"shipping_data"`
	Payment  orderdomain.PaymentMethod   `json:"payment_data"`
}

type QuoteLine struct {
	ProductID string
	Name      string
	Quantity  int32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is the summary-step review: current prices, no reservation.
type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

// CommitResult is what the caller learns after a successful commit.
type CommitResult struct {
	OrderID string
	Total   decimal.Decimal
}
