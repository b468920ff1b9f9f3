package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/taskhabit/tracker/internal/models"
	"github.com/taskhabit/tracker/internal/store"
	"github.com/taskhabit/tracker/internal/validation"
	"go.uber.org/zap"
)

// WebHandler serves the minimal HTML page and the form endpoints for
// non-JS browsers. Each form route is a thin adapter over the store that
// redirects back to the index.
type WebHandler struct {
	store *store.Store
	log   *zap.Logger
}

// NewWebHandler creates a new web handler
func NewWebHandler(s *store.Store, log *zap.Logger) *WebHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebHandler{store: s, log: log}
}

// RegisterRoutes registers the index page and form routes
func (h *WebHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/add_task", h.AddTaskForm).Methods("POST")
	r.HandleFunc("/add_habit", h.AddHabitForm).Methods("POST")
	r.HandleFunc("/complete_task/{id}", h.CompleteTaskForm).Methods("GET")
	r.HandleFunc("/complete_habit/{name}", h.CompleteHabitForm).Methods("GET")
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Task &amp; Habit Tracker</title></head>
<body>
<h1>Tasks</h1>
<ul>
{{range .Tasks}}<li>#{{.ID}} [{{.Status}}] ({{.Priority}}) {{.Title}}{{if .Tags}} - {{range .Tags}}{{.}} {{end}}{{end}}</li>
{{else}}<li>No tasks yet</li>
{{end}}</ul>
<form method="post" action="/add_task">
<input name="title" placeholder="Title" required>
<input name="description" placeholder="Description">
<select name="priority">
<option value="low">low</option>
<option value="medium" selected>medium</option>
<option value="high">high</option>
</select>
<input name="tags" placeholder="tags, comma separated">
<button type="submit">Add task</button>
</form>
<h1>Habits</h1>
<ul>
{{range .Habits}}<li>{{.Name}} - streak {{.CurrentStreak}}/{{.TargetDays}} (best {{.LongestStreak}})</li>
{{else}}<li>No habits yet</li>
{{end}}</ul>
<form method="post" action="/add_habit">
<input name="name" placeholder="Name" required>
<input name="description" placeholder="Description">
<input name="target_days" type="number" value="30" min="1">
<button type="submit">Add habit</button>
</form>
</body>
</html>
`))

// Index renders the task and habit overview page
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Tasks  []*models.Task
		Habits []*models.Habit
	}{
		Tasks:  h.store.ListTasks(true),
		Habits: h.store.ListHabits(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.log.Error("failed_to_render_index", zap.Error(err))
	}
}

// AddTaskForm adds a task via form submission
func (h *WebHandler) AddTaskForm(w http.ResponseWriter, r *http.Request) {
	title := validation.SanitizeText(r.FormValue("title"))
	if title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required")
		return
	}

	priority := models.PriorityMedium
	if p := r.FormValue("priority"); p != "" {
		if err := validation.ValidatePriority(p); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		priority = models.Priority(p)
	}

	description := validation.SanitizeText(r.FormValue("description"))
	tags := validation.SplitTags(r.FormValue("tags"))

	if _, err := h.store.AddTask(title, description, priority, tags); err != nil {
		respondStoreError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AddHabitForm adds a habit via form submission
func (h *WebHandler) AddHabitForm(w http.ResponseWriter, r *http.Request) {
	name := validation.SanitizeText(r.FormValue("name"))
	if name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Name is required")
		return
	}

	targetDays := 30
	if td := r.FormValue("target_days"); td != "" {
		parsed, err := strconv.Atoi(td)
		if err != nil || parsed < 1 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "target_days must be a positive integer")
			return
		}
		targetDays = parsed
	}

	description := validation.SanitizeText(r.FormValue("description"))

	if _, err := h.store.AddHabit(name, description, targetDays); err != nil {
		respondStoreError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CompleteTaskForm completes a task via URL
func (h *WebHandler) CompleteTaskForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid task id")
		return
	}

	if _, err := h.store.CompleteTask(id); err != nil {
		respondStoreError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CompleteHabitForm completes a habit via URL. A same-day repeat is
// treated as a no-op here, matching the lenient form flow.
func (h *WebHandler) CompleteHabitForm(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if _, err := h.store.CompleteHabit(name); err != nil && !errors.Is(err, store.ErrHabitAlreadyDone) {
		respondStoreError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
