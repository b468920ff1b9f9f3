package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/taskhabit/tracker/internal/models"
	"github.com/taskhabit/tracker/internal/store"
	"github.com/taskhabit/tracker/internal/validation"
)

// MaxTitleLength is the maximum length for task titles
const MaxTitleLength = 500

// TaskHandler handles task-related requests
type TaskHandler struct {
	store *store.Store
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(s *store.Store) *TaskHandler {
	return &TaskHandler{store: s}
}

// RegisterRoutes registers task routes on the given router.
// The router should already carry the /tasks prefix.
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}/complete", h.CompleteTask).Methods("POST")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
}

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=500"`
	Description string   `json:"description" validate:"max=2000"`
	Priority    string   `json:"priority" validate:"omitempty,priority"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=100"`
}

// ListTasks lists tasks in creation order. Completed tasks are hidden
// unless include_completed=true.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	includeCompleted := false
	if v := r.URL.Query().Get("include_completed"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "include_completed must be a boolean")
			return
		}
		includeCompleted = parsed
	}

	respondJSON(w, http.StatusOK, h.store.ListTasks(includeCompleted))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
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

	req.Title = validation.SanitizeText(req.Title)
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required")
		return
	}
	req.Description = validation.SanitizeText(req.Description)

	priority := models.PriorityMedium
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
	}

	task, err := h.store.AddTask(req.Title, req.Description, priority, req.Tags)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// CompleteTask marks a task as completed
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task id")
		return
	}

	task, err := h.store.CompleteTask(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task. Deleting a missing task succeeds.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task id")
		return
	}

	if err := h.store.DeleteTask(id); err != nil {
		respondStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// taskID parses the numeric task id path variable
func taskID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
