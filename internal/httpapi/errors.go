package httpapi

import (
	"errors"
	"net/http"

	accountapp "github.com/dimasqi/storefront/internal/account/app"
	cartapp "github.com/dimasqi/storefront/internal/cart/app"
	catalogapp "github.com/dimasqi/storefront/internal/catalog/app"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
	checkoutapp "github.com/dimasqi/storefront/internal/checkout/app"
	orderapp "github.com/dimasqi/storefront/internal/order/app"
)

// handleServiceError translates app-layer errors into one JSON error
// response. Every recoverable error surfaces as a notice the client can
// act on; anything unexpected becomes a generic 500.
func handleServiceError(w http.ResponseWriter, err error) {
	var (
		stockErr *catalogdomain.InsufficientStockError
		valErr   *checkoutapp.ValidationError
	)

	switch {
	case errors.As(err, &stockErr):
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error: stockErr.Error(),
			Code:  "INSUFFICIENT_STOCK",
			Details: map[string]any{
				"product_id": stockErr.ProductID,
				"product":    stockErr.Name,
				"available":  stockErr.Available,
			},
		})
	case errors.As(err, &valErr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   valErr.Error(),
			Code:    "VALIDATION_FAILED",
			Details: valErr.Fields,
		})
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		respondError(w, http.StatusConflict, "EMPTY_CART", "your cart is empty")
	case errors.Is(err, checkoutapp.ErrIncompleteCheckout):
		respondError(w, http.StatusConflict, "INCOMPLETE_CHECKOUT", "submit shipping and payment details first")
	case errors.Is(err, catalogapp.ErrPermissionDenied):
		respondError(w, http.StatusForbidden, "PERMISSION_DENIED", "you do not own this product")
	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, cartapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, accountapp.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, accountapp.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, accountapp.ErrEmailTaken):
		respondError(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
	case errors.Is(err, accountapp.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, accountapp.ErrSessionNotFound):
		respondError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "login required")
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL", "something went wrong")
	}
}
