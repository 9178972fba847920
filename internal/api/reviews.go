package api

import (
	"net/http"

	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	review, err := store.CreateReview(r.Context(), s.db, currentUser(r).ID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) handleListProductReviews(w http.ResponseWriter, r *http.Request) {
	reviews, stats, err := store.ListProductReviews(r.Context(), s.db, r.PathValue("productId"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"stats":   stats,
	})
}

func (s *Server) handleMarkReviewHelpful(w http.ResponseWriter, r *http.Request) {
	review, err := store.MarkReviewHelpful(r.Context(), s.db, r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	review, err := store.GetReview(r.Context(), s.db, r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	user := currentUser(r)
	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "not authorized to delete this review")
		return
	}

	if err := store.DeleteReview(r.Context(), s.db, review.ID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
