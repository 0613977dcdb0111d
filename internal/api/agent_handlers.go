package api

import (
	"errors"
	"net/http"

	"imobhub/internal/service/agent"
)

// handleAgentCreate forwards a sanitized provisioning request to the
// automation webhook and relays its response verbatim.
func (s *Server) handleAgentCreate(w http.ResponseWriter, r *http.Request) {
	var req agent.Request
	if err := decodeJSON(r, &req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	respBody, err := s.agents.Provision(r.Context(), req)
	if errors.Is(err, agent.ErrValidation) {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		apiError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(respBody)
}
