package api

import (
	"net/http"

	"github.com/sunleaf/sunleaf-api/internal/store"
)

func (s *Server) handleAdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := store.ListAllOrders(r.Context(), s.db)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStoreStats(r.Context(), s.db)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
