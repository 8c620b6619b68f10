package handlers

import (
	"net/http"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/response"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/service"
)

// PortfolioHandler handles valuation-related HTTP requests
type PortfolioHandler struct {
	valuationService *service.ValuationService
	rates            service.RateProvider
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(valuationService *service.ValuationService, rates service.RateProvider) *PortfolioHandler {
	return &PortfolioHandler{
		valuationService: valuationService,
		rates:            rates,
	}
}

// Valuation runs a refresh cycle and returns the full valuation report:
// one line per position plus the aggregate summary, all in TWD. Failed
// quote fetches appear as degraded lines, never as an error response.
//
// Endpoint: GET /api/portfolio/valuation
func (h *PortfolioHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	report, err := h.valuationService.Valuate(r.Context())
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToGetValuation.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// RateResponse represents the exchange-rate response
type RateResponse struct {
	USDRate float64 `json:"usdRate"`
}

// Rate returns the current USD→TWD exchange rate (cached, falling back
// to the configured default when the feed is unavailable).
//
// Endpoint: GET /api/portfolio/rate
func (h *PortfolioHandler) Rate(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, RateResponse{
		USDRate: h.rates.Rate(r.Context()),
	})
}
