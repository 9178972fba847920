package api

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sunleaf/sunleaf-api/internal/auth"
	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/pricing"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps a store/pricing error onto the API's error
// taxonomy: not-found 404, business-rule and validation failures 400,
// credential failures 401, everything else a generic 500.
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	var minPurchase *pricing.MinPurchaseError

	switch {
	case errors.Is(err, database.ErrProductNotFound),
		errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrPromoNotFound),
		errors.Is(err, database.ErrReviewNotFound),
		errors.Is(err, database.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, database.ErrInsufficientStock),
		errors.Is(err, database.ErrDuplicateReview),
		errors.Is(err, database.ErrDuplicateEmail),
		errors.Is(err, database.ErrPromoExhausted),
		errors.Is(err, store.ErrEmptyOrder),
		errors.Is(err, pricing.ErrInactive),
		errors.Is(err, pricing.ErrExpired),
		errors.Is(err, pricing.ErrExhausted),
		errors.As(err, &minPurchase):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, err.Error())

	default:
		s.logger.Error("internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
