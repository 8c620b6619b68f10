package handlers

import (
	"errors"
	"net/http"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/api/response"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
)

// respondServiceError maps service-layer errors onto HTTP status codes:
// validation failures become 400, missing positions 404, and anything
// else (store I/O) 500.
func respondServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrPositionNotFound):
		response.RespondError(w, http.StatusNotFound, message, err.Error())
	case errors.Is(err, apperrors.ErrEmptySymbol),
		errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrNegativePrice),
		errors.Is(err, apperrors.ErrInvalidCurrency),
		errors.Is(err, apperrors.ErrInvalidTrackingMode):
		response.RespondError(w, http.StatusBadRequest, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
