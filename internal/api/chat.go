package api

import (
	"net/http"

	"github.com/sunleaf/sunleaf-api/internal/chat"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Messages == nil {
		respondError(w, http.StatusBadRequest, "invalid messages format")
		return
	}

	reply := s.responder.RespondToConversation(req.Messages)
	respondJSON(w, http.StatusOK, map[string]string{"message": reply})
}
