package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tailtown/pricingservice/internal/service"
)

// QuoteHandler serves the calculation endpoints.
type QuoteHandler struct {
	quotes *service.QuoteService
}

func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// CalculateDeposit handles POST /deposits/calculate.
func (h *QuoteHandler) CalculateDeposit(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	var req depositQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	booking, err := req.bookingContext()
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	quote, err := h.quotes.DepositQuote(r.Context(), tenant, booking)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

// CalculateRefund handles POST /deposits/refund.
func (h *QuoteHandler) CalculateRefund(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	var req refundQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	start, cancel, err := req.dates()
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	quote, err := h.quotes.RefundQuote(r.Context(), tenant, req.DepositAmount, start, cancel)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

// CalculateMultiPet handles POST /multi-pet/calculate-pricing.
func (h *QuoteHandler) CalculateMultiPet(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	var req multiPetQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	quote, err := h.quotes.MultiPetQuote(r.Context(), tenant, req.SuiteType, req.NumberOfPets)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

// CalculatePrice handles POST /pricing/calculate.
func (h *QuoteHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")

	var req depositQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	booking, err := req.bookingContext()
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	quote, err := h.quotes.PriceQuote(r.Context(), tenant, booking)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}
