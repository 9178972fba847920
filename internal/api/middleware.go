package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

type contextKey int

const userContextKey contextKey = iota

// currentUser returns the authenticated user placed in the context by
// requireAuth.
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}

// requireAuth verifies the bearer token and loads the user it was issued
// for, so handlers always see the user's current role.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.auth.VerifyToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := store.GetUser(r.Context(), s.db, userID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.Handler {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != models.RoleAdmin {
			respondError(w, http.StatusForbidden, "access denied")
			return
		}
		next(w, r)
	})
}
