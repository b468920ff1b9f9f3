package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/taskhabit/tracker/internal/store"
)

func newWebRouter(t *testing.T) (*mux.Router, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "tracker_data.json"), nil)
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}

	r := mux.NewRouter()
	NewWebHandler(s, nil).RegisterRoutes(r)
	return r, s
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAddTaskForm(t *testing.T) {
	t.Parallel()

	r, s := newWebRouter(t)

	rec := postForm(t, r, "/add_task", url.Values{
		"title":    {"Buy milk"},
		"priority": {"high"},
		"tags":     {"errands, groceries"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect, got %d (%s)", rec.Code, rec.Body.String())
	}

	tasks := s.ListTasks(true)
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if len(tasks[0].Tags) != 2 || tasks[0].Tags[0] != "errands" {
		t.Errorf("Expected parsed tags, got %v", tasks[0].Tags)
	}
}

func TestAddTaskForm_MissingTitle(t *testing.T) {
	t.Parallel()

	r, _ := newWebRouter(t)

	rec := postForm(t, r, "/add_task", url.Values{"title": {"  "}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCompleteHabitForm_SameDayIsLenient(t *testing.T) {
	t.Parallel()

	r, s := newWebRouter(t)

	if _, err := s.AddHabit("Read", "", 14); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/complete_habit/Read", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("Attempt %d: expected redirect, got %d", i+1, rec.Code)
		}
	}

	habits := s.ListHabits()
	if habits[0].CurrentStreak != 1 {
		t.Errorf("Expected streak 1 after same-day repeat, got %d", habits[0].CurrentStreak)
	}
}

func TestIndexPage(t *testing.T) {
	t.Parallel()

	r, s := newWebRouter(t)

	if _, err := s.AddTask("Shown on page", "", "medium", nil); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Shown on page") {
		t.Error("Expected task title on the index page")
	}
}
