package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	accountapp "github.com/dimasqi/storefront/internal/account/app"
	cartapp "github.com/dimasqi/storefront/internal/cart/app"
	catalogapp "github.com/dimasqi/storefront/internal/catalog/app"
	catalogdomain "github.com/dimasqi/storefront/internal/catalog/domain"
	checkoutapp "github.com/dimasqi/storefront/internal/checkout/app"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp
}

func TestHandleServiceError(t *testing.T) {
	t.Run("insufficient stock -> 409 with details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(rec, &catalogdomain.InsufficientStockError{
			ProductID: "p1", Name: "Mug", Available: 2,
		})

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d", rec.Code)
		}
		resp := decodeError(t, rec)
		if resp.Code != "INSUFFICIENT_STOCK" {
			t.Fatalf("code = %s", resp.Code)
		}
		details, ok := resp.Details.(map[string]any)
		if !ok {
			t.Fatalf("details = %T", resp.Details)
		}
		if details["product"] != "Mug" || details["available"] != float64(2) {
			t.Fatalf("details = %v", details)
		}
	})

	t.Run("validation error -> 422 with field list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(rec, &checkoutapp.ValidationError{Fields: []checkoutapp.FieldError{
			{Field: "address", Message: "address is required"},
		}})

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "VALIDATION_FAILED" {
			t.Fatalf("code = %s", resp.Code)
		}
	})

	t.Run("wrapped sentinel still matches", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(rec, fmt.Errorf("get product: %w", catalogapp.ErrNotFound))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("sentinel table", func(t *testing.T) {
		cases := []struct {
			err        error
			wantStatus int
			wantCode   string
		}{
			{checkoutapp.ErrEmptyCart, http.StatusConflict, "EMPTY_CART"},
			{checkoutapp.ErrIncompleteCheckout, http.StatusConflict, "INCOMPLETE_CHECKOUT"},
			{catalogapp.ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
			{cartapp.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
			{cartapp.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT"},
			{accountapp.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
			{accountapp.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
			{accountapp.ErrSessionNotFound, http.StatusUnauthorized, "UNAUTHENTICATED"},
		}
		for _, tc := range cases {
			rec := httptest.NewRecorder()
			handleServiceError(rec, tc.err)
			if rec.Code != tc.wantStatus {
				t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.wantStatus)
			}
			if resp := decodeError(t, rec); resp.Code != tc.wantCode {
				t.Fatalf("%v: code = %s, want %s", tc.err, resp.Code, tc.wantCode)
			}
		}
	})

	t.Run("unknown error -> 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(rec, errors.New("boom"))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != "INTERNAL" {
			t.Fatalf("code = %s", resp.Code)
		}
	})
}
