package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/taskhabit/tracker/internal/store"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	store *store.Store
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(s *store.Store) *HealthChecker {
	return &HealthChecker{store: s}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint. Extended mode additionally
// verifies the data file location is usable.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	statusCode := http.StatusOK
	if r.URL.Query().Get("mode") == "extended" {
		checks := make(map[string]string)
		if err := h.checkDataFile(); err != nil {
			response.Status = "unhealthy"
			checks["data_file"] = "unhealthy: " + err.Error()
			statusCode = http.StatusServiceUnavailable
		} else {
			checks["data_file"] = "healthy"
		}
		response.Checks = checks
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkDataFile verifies the snapshot file is readable or, if it does not
// exist yet, that its directory does
func (h *HealthChecker) checkDataFile() error {
	path := h.store.Path()

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); err != nil {
			return err
		}
	}

	return nil
}
