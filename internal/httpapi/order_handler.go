package httpapi

import (
	"net/http"
	"time"

	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type orderItemResponse struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Quantity        int32           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type orderResponse struct {
	ID            string                      `json:"id"`
	TotalPrice    decimal.Decimal             `json:"total_price"`
	Shipping      orderdomain.ShippingDetails `json:"shipping"`
	PaymentMethod string                      `json:"payment_method"`
	Items         []orderItemResponse         `json:"items"`
	CreatedAt     time.Time                   `json:"created_at"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
}

func toOrderResponse(o orderdomain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
			Subtotal:        it.Subtotal(),
		})
	}
	return orderResponse{
		ID:            o.ID,
		TotalPrice:    o.TotalPrice,
		Shipping:      o.Shipping,
		PaymentMethod: string(o.PaymentMethod),
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}

// handleOrderHistory lists the caller's orders, newest first.
func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.History(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := orderListResponse{Orders: make([]orderResponse, 0, len(orders))}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.orders.GetOrder(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "orderID"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(o))
}
