package api

import (
	"net/http"

	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		ShippingAddress string `json:"shippingAddress"`
		ShippingCity    string `json:"shippingCity"`
		ShippingZip     string `json:"shippingZip"`
		Phone           string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case len(req.Items) == 0:
		respondError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	case len(req.ShippingAddress) < 5:
		respondError(w, http.StatusBadRequest, "shipping address must be at least 5 characters")
		return
	case len(req.ShippingCity) < 2:
		respondError(w, http.StatusBadRequest, "shipping city must be at least 2 characters")
		return
	case len(req.ShippingZip) < 4:
		respondError(w, http.StatusBadRequest, "shipping zip must be at least 4 characters")
		return
	case len(req.Phone) < 10:
		respondError(w, http.StatusBadRequest, "phone must be at least 10 characters")
		return
	}

	items := make([]store.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "each item needs a product id and a positive quantity")
			return
		}
		items = append(items, store.OrderItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := store.CreateOrder(r.Context(), s.db, store.CreateOrderRequest{
		UserID:          currentUser(r).ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingZip:     req.ShippingZip,
		Phone:           req.Phone,
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := store.ListOrdersByUser(r.Context(), s.db, currentUser(r).ID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := store.GetOrder(r.Context(), s.db, r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	user := currentUser(r)
	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "access denied")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !models.IsValidOrderStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	order, err := store.UpdateOrderStatus(r.Context(), s.db, r.PathValue("id"), req.Status)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
