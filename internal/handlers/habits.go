package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/taskhabit/tracker/internal/models"
	"github.com/taskhabit/tracker/internal/store"
	"github.com/taskhabit/tracker/internal/validation"
)

// HabitHandler handles habit-related requests
type HabitHandler struct {
	store *store.Store
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(s *store.Store) *HabitHandler {
	return &HabitHandler{store: s}
}

// RegisterRoutes registers habit routes on the given router.
// The router should already carry the /habits prefix.
func (h *HabitHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListHabits).Methods("GET")
	r.HandleFunc("", h.CreateHabit).Methods("POST")
	r.HandleFunc("/{name}/complete", h.CompleteHabit).Methods("POST")
	r.HandleFunc("/{name}", h.DeleteHabit).Methods("DELETE")
}

// CreateHabitRequest represents a create habit request
type CreateHabitRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	TargetDays  int    `json:"target_days" validate:"omitempty,min=1,max=3650"`
}

// HabitResponse is a habit together with its derived progress percentage
type HabitResponse struct {
	*models.Habit
	Progress float64 `json:"progress"`
}

// ListHabits lists habits in creation order with derived progress
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	habits := h.store.ListHabits()

	response := make([]HabitResponse, 0, len(habits))
	for _, habit := range habits {
		response = append(response, HabitResponse{Habit: habit, Progress: habit.Progress()})
	}

	respondJSON(w, http.StatusOK, response)
}

// CreateHabit creates a new habit
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	req.Name = validation.SanitizeText(req.Name)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name is required")
		return
	}
	req.Description = validation.SanitizeText(req.Description)

	if req.TargetDays == 0 {
		req.TargetDays = 30
	}

	habit, err := h.store.AddHabit(req.Name, req.Description, req.TargetDays)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, HabitResponse{Habit: habit, Progress: habit.Progress()})
}

// CompleteHabit records today's completion for a habit
func (h *HabitHandler) CompleteHabit(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	habit, err := h.store.CompleteHabit(name)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, HabitResponse{Habit: habit, Progress: habit.Progress()})
}

// DeleteHabit deletes a habit by exact name. Deleting a missing habit succeeds.
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.store.DeleteHabit(name); err != nil {
		respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
