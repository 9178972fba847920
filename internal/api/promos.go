package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func (s *Server) handleValidatePromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string  `json:"code"`
		TotalAmount float64 `json:"totalAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := store.ValidatePromoCode(r.Context(), s.db, req.Code, decimal.NewFromFloat(req.TotalAmount))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := store.ApplyPromoCode(r.Context(), s.db, req.Code); err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := store.ListPromoCodes(r.Context(), s.db)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, promos)
}

func (s *Server) handleCreatePromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string  `json:"code"`
		Discount    float64 `json:"discount"`
		Type        string  `json:"type"`
		MinPurchase float64 `json:"minPurchase"`
		MaxUses     int     `json:"maxUses"`
		ExpiresAt   *string `json:"expiresAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.Code == "":
		respondError(w, http.StatusBadRequest, "code is required")
		return
	case req.Discount <= 0:
		respondError(w, http.StatusBadRequest, "discount must be positive")
		return
	case !models.IsValidPromoType(req.Type):
		respondError(w, http.StatusBadRequest, "type must be PERCENTAGE or FIXED")
		return
	case req.MaxUses < 0 || req.MinPurchase < 0:
		respondError(w, http.StatusBadRequest, "minPurchase and maxUses must not be negative")
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			respondError(w, http.StatusBadRequest, "expiresAt must be an RFC 3339 timestamp")
			return
		}
		expiresAt = &t
	}

	promo, err := store.CreatePromoCode(r.Context(), s.db, store.NewPromoCode{
		Code:        req.Code,
		Discount:    decimal.NewFromFloat(req.Discount),
		Type:        req.Type,
		MinPurchase: decimal.NewFromFloat(req.MinPurchase),
		MaxUses:     req.MaxUses,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, promo)
}

func (s *Server) handleDeletePromo(w http.ResponseWriter, r *http.Request) {
	if err := store.DeletePromoCode(r.Context(), s.db, r.PathValue("id")); err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "promo code deleted"})
}

func (s *Server) handleTogglePromo(w http.ResponseWriter, r *http.Request) {
	promo, err := store.TogglePromoCode(r.Context(), s.db, r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, promo)
}
