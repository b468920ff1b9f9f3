package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/taskhabit/tracker/internal/store"
)

// respondJSON sends a success envelope
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondJSONError sends an error envelope with a sanitized message
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if len(message) > 200 {
		message = message[:200] + "..."
	}

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondStoreError maps store failures onto the HTTP error taxonomy:
// validation errors and same-day repeats are 400, lookup misses are 404,
// anything else (a failed snapshot write) is 500.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, store.ErrHabitNotFound):
		respondJSONError(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, store.ErrHabitAlreadyDone),
		errors.Is(err, store.ErrEmptyTitle),
		errors.Is(err, store.ErrEmptyName),
		errors.Is(err, store.ErrInvalidTargetDays):
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to persist changes")
	}
}
