package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if filter.Category != "" && !models.IsValidCategory(filter.Category) {
		respondError(w, http.StatusBadRequest, "invalid category")
		return
	}

	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	page, err := store.ListProducts(r.Context(), s.db, filter)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := store.GetProduct(r.Context(), s.db, r.PathValue("id"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       *int     `json:"stock"`
}

func (p *productRequest) validate(partial bool) string {
	if !partial {
		if p.Name == nil || p.Description == nil || p.Price == nil || p.Category == nil || p.ImageURL == nil {
			return "name, description, price, category and imageUrl are required"
		}
	}
	if p.Name != nil && len(*p.Name) < 2 {
		return "name must be at least 2 characters"
	}
	if p.Price != nil && *p.Price <= 0 {
		return "price must be positive"
	}
	if p.Category != nil && !models.IsValidCategory(*p.Category) {
		return "invalid category"
	}
	if p.Stock != nil && *p.Stock < 0 {
		return "stock must not be negative"
	}
	return ""
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(false); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	product, err := store.CreateProduct(r.Context(), s.db, store.NewProduct{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       decimal.NewFromFloat(*req.Price),
		Category:    *req.Category,
		ImageURL:    *req.ImageURL,
		Stock:       stock,
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(true); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	upd := store.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		upd.Price = &price
	}

	product, err := store.UpdateProduct(r.Context(), s.db, r.PathValue("id"), upd)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := store.DeleteProduct(r.Context(), s.db, r.PathValue("id")); err != nil {
		s.respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
