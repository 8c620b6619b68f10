package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/request"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/response"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/model"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/service"
)

// PositionHandler handles position-related HTTP requests
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// List returns all stored positions in insertion order.
//
// Endpoint: GET /api/positions
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionService.List()
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrievePositions.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Create upserts a position: an existing entry with the same normalized
// symbol is replaced by the submitted values.
//
// Endpoint: POST /api/positions
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	position, err := h.positionService.CreateOrReplace(r.Context(), model.Position{
		Symbol:       req.Symbol,
		DisplayName:  req.DisplayName,
		CostBasis:    req.CostBasis,
		Quantity:     req.Quantity,
		Currency:     model.Currency(req.Currency),
		TrackingMode: model.TrackingMode(req.TrackingMode),
		ManualPrice:  req.ManualPrice,
	})
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToSavePosition.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// UpdatePrice sets the manual price of an existing position.
//
// Endpoint: PUT /api/positions/{symbol}/price
func (h *PositionHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	var req request.UpdateManualPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := h.positionService.UpdateManualPrice(symbol, req.Price); err != nil {
		respondServiceError(w, apperrors.ErrFailedToUpdatePrice.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Delete removes a single position. Deleting an unknown symbol succeeds
// with no effect.
//
// Endpoint: DELETE /api/positions/{symbol}
func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.positionService.Delete(symbol); err != nil {
		respondServiceError(w, apperrors.ErrFailedToDeletePosition.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Clear removes all positions.
//
// Endpoint: DELETE /api/positions
func (h *PositionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.positionService.Clear(); err != nil {
		respondServiceError(w, apperrors.ErrFailedToClearPositions.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
