// Package api wires the storefront's HTTP surface: per-resource handlers
// over the store, bearer-token middleware, and JSON responses.
package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/sunleaf/sunleaf-api/internal/auth"
	"github.com/sunleaf/sunleaf-api/internal/chat"
)

type Server struct {
	db        *sql.DB
	auth      *auth.Manager
	responder *chat.Responder
	logger    *slog.Logger
}

func NewServer(db *sql.DB, authMgr *auth.Manager, responder *chat.Responder, logger *slog.Logger) *Server {
	return &Server{
		db:        db,
		auth:      authMgr,
		responder: responder,
		logger:    logger,
	}
}

// Routes builds the full route table.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	mux.Handle("POST /api/products", s.requireAdmin(s.handleCreateProduct))
	mux.Handle("PUT /api/products/{id}", s.requireAdmin(s.handleUpdateProduct))
	mux.Handle("DELETE /api/products/{id}", s.requireAdmin(s.handleDeleteProduct))

	mux.Handle("POST /api/orders", s.requireAuth(s.handleCreateOrder))
	mux.Handle("GET /api/orders", s.requireAuth(s.handleListOrders))
	mux.Handle("GET /api/orders/{id}", s.requireAuth(s.handleGetOrder))
	mux.Handle("PATCH /api/orders/{id}/status", s.requireAdmin(s.handleUpdateOrderStatus))

	mux.HandleFunc("POST /api/promo/validate", s.handleValidatePromo)
	mux.HandleFunc("POST /api/promo/apply", s.handleApplyPromo)
	mux.Handle("GET /api/promo/admin", s.requireAdmin(s.handleListPromos))
	mux.Handle("POST /api/promo/admin", s.requireAdmin(s.handleCreatePromo))
	mux.Handle("DELETE /api/promo/admin/{id}", s.requireAdmin(s.handleDeletePromo))
	mux.Handle("PATCH /api/promo/admin/{id}/toggle", s.requireAdmin(s.handleTogglePromo))

	mux.Handle("POST /api/reviews", s.requireAuth(s.handleCreateReview))
	mux.HandleFunc("GET /api/reviews/product/{productId}", s.handleListProductReviews)
	mux.Handle("POST /api/reviews/{id}/helpful", s.requireAuth(s.handleMarkReviewHelpful))
	mux.Handle("DELETE /api/reviews/{id}", s.requireAuth(s.handleDeleteReview))

	mux.HandleFunc("POST /api/chat", s.handleChat)

	mux.Handle("GET /api/admin/orders", s.requireAdmin(s.handleAdminListOrders))
	mux.Handle("GET /api/admin/stats", s.requireAdmin(s.handleAdminStats))

	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
