package http

import (
	"net/http"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	agentType := types.AgentType(r.URL.Query().Get("type"))

	agents, err := s.uc.Actor.ListAgents(r.Context(), agentType)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, agents)
}

func (s *Server) setActorActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	actor, err := s.uc.Actor.SetActive(r.Context(), pathID(r), req.Active)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, actor)
}
