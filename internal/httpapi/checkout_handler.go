package httpapi

import (
	"encoding/json"
	"net/http"

	checkoutapp "github.com/dimasqi/storefront/internal/checkout/app"
	checkoutdomain "github.com/dimasqi/storefront/internal/checkout/domain"
	"github.com/shopspring/decimal"
)

type stagedDetailsResponse struct {
	Staged  bool                          `json:"staged"`
	Details *checkoutdomain.StagedDetails `json:"details,omitempty"`
}

type quoteLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type summaryResponse struct {
	Details checkoutdomain.StagedDetails `json:"details"`
	Lines   []quoteLineResponse          `json:"lines"`
	Total   decimal.Decimal              `json:"total"`
}

type commitResponse struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// handleGetCheckoutDetails returns whatever is staged so a re-entered
// details form starts pre-populated.
func (s *Server) handleGetCheckoutDetails(w http.ResponseWriter, r *http.Request) {
	staged, ok, err := s.checkout.StagedDetails(r.Context(), sessionIDFrom(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := stagedDetailsResponse{Staged: ok}
	if ok {
		resp.Details = &staged
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitCheckoutDetails(w http.ResponseWriter, r *http.Request) {
	var form checkoutapp.DetailsForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "invalid JSON body")
		return
	}

	if err := s.checkout.SubmitDetails(r.Context(), sessionIDFrom(r.Context()), form); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheckoutSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	staged, quote, err := s.checkout.Summary(ctx, userIDFrom(ctx), sessionIDFrom(ctx))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	lines := make([]quoteLineResponse, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, quoteLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	respondJSON(w, http.StatusOK, summaryResponse{Details: staged, Lines: lines, Total: quote.Total})
}

func (s *Server) handleCheckoutCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := s.checkout.Commit(ctx, userIDFrom(ctx), sessionIDFrom(ctx))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, commitResponse{OrderID: res.OrderID, Total: res.Total})
}
