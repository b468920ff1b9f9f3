package handlers

import (
	"net/http"

	"github.com/taskhabit/tracker/internal/store"
)

// StatsHandler serves aggregate task and habit statistics
type StatsHandler struct {
	store *store.Store
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(s *store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

// Stats handles GET /stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Stats())
}
