package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tickethub/ticket-resolver/apimodels"
	"github.com/tickethub/ticket-resolver/internal/ticket"
)

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req apimodels.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Ticket.ID == "" {
		http.Error(w, "ticket id is required", http.StatusBadRequest)
		return
	}

	slog.Debug("Received resolve request", "ticket_id", req.Ticket.ID)

	// Resolve never fails; failures arrive as error-status resolutions.
	resolution := s.orch.Resolve(r.Context(), req.Ticket)
	writeJSON(w, resolution)
}

func (s *Server) handleResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req apimodels.BatchResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(req.Tickets) == 0 {
		http.Error(w, "at least one ticket is required", http.StatusBadRequest)
		return
	}
	for _, t := range req.Tickets {
		if t.ID == "" {
			http.Error(w, "every ticket needs an id", http.StatusBadRequest)
			return
		}
	}

	resolutions := s.orch.ResolveBatch(r.Context(), req.Tickets)

	completed := 0
	for _, res := range resolutions {
		if res.Status == ticket.StatusCompleted {
			completed++
		}
	}

	writeJSON(w, apimodels.BatchResolveResponse{
		Resolutions: resolutions,
		Completed:   completed,
		Total:       len(req.Tickets),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.orch.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
