package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sunleaf/sunleaf-api/internal/database"
	"github.com/sunleaf/sunleaf-api/internal/models"
	"github.com/sunleaf/sunleaf-api/internal/store"
)

type authResponse struct {
	User  *models.UserSummaryWithRole `json:"user"`
	Token string                      `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	switch {
	case !strings.Contains(req.Email, "@"):
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	case len(req.Password) < 8:
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	case len(req.Name) < 2:
		respondError(w, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	user, err := store.CreateUser(r.Context(), s.db, req.Email, hash, req.Name, models.RoleUser)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{User: summarize(user), Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.respondStoreError(w, err)
		return
	}

	if !s.auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{User: summarize(user), Token: token})
}

func summarize(u *models.User) *models.UserSummaryWithRole {
	return &models.UserSummaryWithRole{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
