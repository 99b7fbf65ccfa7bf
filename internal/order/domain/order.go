package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPaypal, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

// ShippingDetails is the address snapshot frozen onto an order at commit.
type ShippingDetails struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Order struct {
	ID            string
	UserID        string
	TotalPrice    decimal.Decimal
	Shipping      ShippingDetails
	PaymentMethod PaymentMethod
	Items         []OrderItem
	CreatedAt     time.Time
}

// OrderItem records the purchased quantity and the unit price at commit
// time; later catalog price changes do not touch it.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Name            string
	Quantity        int32
	PriceAtPurchase decimal.Decimal
}

func (it OrderItem) Subtotal() decimal.Decimal {
	return it.PriceAtPurchase.Mul(decimal.NewFromInt32(it.Quantity))
}
