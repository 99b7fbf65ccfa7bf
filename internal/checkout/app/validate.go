package app

import (
	"fmt"
	"strings"

	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
)

// DetailsForm carries the raw fields of the checkout details step.
type DetailsForm struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed, so the form can render
// all problems at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("invalid checkout details: %s", strings.Join(names, ", "))
}

// ValidateDetails is pure: it inspects the form and either returns the
// typed bundles for staging or a ValidationError. No rendering concerns.
func ValidateDetails(form DetailsForm) (orderdomain.ShippingDetails, orderdomain.PaymentMethod, error) {
	var fields []FieldError

	required := []struct {
		name  string
		value string
		max   int
	}{
		{"address", form.Address, 255},
		{"city", form.City, 100},
		{"state", form.State, 100},
		{"postal_code", form.PostalCode, 20},
		{"country", form.Country, 100},
	}
	for _, f := range required {
		v := strings.TrimSpace(f.value)
		if v == "" {
			fields = append(fields, FieldError{Field: f.name, Message: "this field is required"})
			continue
		}
		if len(v) > f.max {
			fields = append(fields, FieldError{Field: f.name, Message: fmt.Sprintf("must be at most %d characters", f.max)})
		}
	}

	method := orderdomain.PaymentMethod(strings.TrimSpace(form.PaymentMethod))
	if !method.Valid() {
		fields = append(fields, FieldError{Field: "payment_method", Message: "unrecognized payment method"})
	}

	if len(fields) > 0 {
		return orderdomain.ShippingDetails{}, "", &ValidationError{Fields: fields}
	}

	return orderdomain.ShippingDetails{
		Address:    strings.TrimSpace(form.Address),
		City:       strings.TrimSpace(form.City),
		State:      strings.TrimSpace(form.State),
		PostalCode: strings.TrimSpace(form.PostalCode),
		Country:    strings.TrimSpace(form.Country),
	}, method, nil
}
