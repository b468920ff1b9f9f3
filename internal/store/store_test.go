package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskhabit/tracker/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "tracker_data.json"), nil)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}
	return s
}

func TestAddTask_AssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	for i := 1; i <= 3; i++ {
		task, err := s.AddTask("task", "", models.PriorityMedium, nil)
		if err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
		if task.ID != i {
			t.Errorf("Expected id %d, got %d", i, task.ID)
		}
		if task.Status != models.TaskStatusPending {
			t.Errorf("Expected status pending, got %s", task.Status)
		}
	}

	// Ids are never reused, even after deletion
	if err := s.DeleteTask(3); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	task, err := s.AddTask("after delete", "", models.PriorityLow, nil)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.ID != 4 {
		t.Errorf("Expected id 4 after deleting task 3, got %d", task.ID)
	}
}

func TestAddTask_EmptyTitle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddTask("   ", "", models.PriorityMedium, nil); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
	if len(s.ListTasks(true)) != 0 {
		t.Error("Expected no tasks after rejected add")
	}
}

func TestCompleteTask(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	added, err := s.AddTask("Buy milk", "", models.PriorityMedium, nil)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if added.ID != 1 {
		t.Fatalf("Expected id 1, got %d", added.ID)
	}

	task, err := s.CompleteTask(1)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if task.Status != models.TaskStatusCompleted {
		t.Errorf("Expected status completed, got %s", task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set")
	}

	if got := s.ListTasks(false); len(got) != 0 {
		t.Errorf("Expected completed task to be hidden, got %d tasks", len(got))
	}
	all := s.ListTasks(true)
	if len(all) != 1 || all[0].ID != 1 {
		t.Errorf("Expected completed task in full listing, got %v", all)
	}
}

func TestCompleteTask_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.CompleteTask(42); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestCompleteTask_RecompleteRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddTask("repeat", "", models.PriorityHigh, nil); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	first, err := s.CompleteTask(1)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	firstAt := *first.CompletedAt

	s.now = func() time.Time { return firstAt.Add(time.Hour) }
	second, err := s.CompleteTask(1)
	if err != nil {
		t.Fatalf("Re-completing a task should not error, got %v", err)
	}
	if !second.CompletedAt.After(firstAt) {
		t.Error("Expected CompletedAt to be refreshed on re-completion")
	}
}

func TestDeleteTask_MissingIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if err := s.DeleteTask(99); err != nil {
		t.Errorf("Expected nil error deleting missing task, got %v", err)
	}
}

func TestAddHabit_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		habitName  string
		targetDays int
		wantErr    error
	}{
		{name: "empty name", habitName: "", targetDays: 30, wantErr: ErrEmptyName},
		{name: "whitespace name", habitName: "  ", targetDays: 30, wantErr: ErrEmptyName},
		{name: "zero target", habitName: "Read", targetDays: 0, wantErr: ErrInvalidTargetDays},
		{name: "valid", habitName: "Read", targetDays: 14},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore(t)
			habit, err := s.AddHabit(tt.habitName, "", tt.targetDays)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddHabit failed: %v", err)
			}
			if habit.CurrentStreak != 0 || habit.LongestStreak != 0 {
				t.Errorf("Expected zeroed streaks, got %d/%d", habit.CurrentStreak, habit.LongestStreak)
			}
			if len(habit.CompletedDates) != 0 {
				t.Errorf("Expected empty completed dates, got %v", habit.CompletedDates)
			}
		})
	}
}

func TestCompleteHabit_SameDayIsAlreadyDone(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddHabit("Read", "Read for 15 minutes", 14); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	habit, err := s.CompleteHabit("Read")
	if err != nil {
		t.Fatalf("CompleteHabit failed: %v", err)
	}
	if habit.CurrentStreak != 1 {
		t.Errorf("Expected streak 1, got %d", habit.CurrentStreak)
	}

	habit, err = s.CompleteHabit("Read")
	if !errors.Is(err, ErrHabitAlreadyDone) {
		t.Fatalf("Expected ErrHabitAlreadyDone, got %v", err)
	}
	if habit.CurrentStreak != 1 {
		t.Errorf("Expected streak unchanged at 1, got %d", habit.CurrentStreak)
	}
	if len(habit.CompletedDates) != 1 {
		t.Errorf("Expected one completed date, got %v", habit.CompletedDates)
	}
}

func TestCompleteHabit_StreakAcrossDays(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddHabit("Read", "", 14); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	if _, err := s.CompleteHabit("Read"); err != nil {
		t.Fatalf("CompleteHabit day 1 failed: %v", err)
	}

	day = day.AddDate(0, 0, 1)
	habit, err := s.CompleteHabit("Read")
	if err != nil {
		t.Fatalf("CompleteHabit day 2 failed: %v", err)
	}
	if habit.CurrentStreak != 2 {
		t.Errorf("Expected streak 2, got %d", habit.CurrentStreak)
	}
	if habit.LongestStreak != 2 {
		t.Errorf("Expected longest streak 2, got %d", habit.LongestStreak)
	}
}

func TestCompleteHabit_GapStillIncrements(t *testing.T) {
	t.Parallel()

	// Calendar continuity is deliberately not checked: a multi-day gap
	// still increments the streak.
	s := newTestStore(t)

	if _, err := s.AddHabit("Exercise", "", 21); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }
	if _, err := s.CompleteHabit("Exercise"); err != nil {
		t.Fatalf("CompleteHabit failed: %v", err)
	}

	day = day.AddDate(0, 0, 5)
	habit, err := s.CompleteHabit("Exercise")
	if err != nil {
		t.Fatalf("CompleteHabit after gap failed: %v", err)
	}
	if habit.CurrentStreak != 2 {
		t.Errorf("Expected streak 2 after gap, got %d", habit.CurrentStreak)
	}
}

func TestCompleteHabit_CaseInsensitiveLookup(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddHabit("Daily Coding", "", 30); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	habit, err := s.CompleteHabit("daily coding")
	if err != nil {
		t.Fatalf("Expected case-insensitive match, got %v", err)
	}
	if habit.Name != "Daily Coding" {
		t.Errorf("Expected original name preserved, got %s", habit.Name)
	}
}

func TestCompleteHabit_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.CompleteHabit("missing"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("Expected ErrHabitNotFound, got %v", err)
	}
}

func TestDeleteHabit(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddHabit("Read", "", 14); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	// Exact-name match only
	if err := s.DeleteHabit("read"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if len(s.ListHabits()) != 1 {
		t.Error("Expected case-mismatched delete to be a no-op")
	}

	if err := s.DeleteHabit("Read"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if len(s.ListHabits()) != 0 {
		t.Error("Expected habit to be removed")
	}

	if err := s.DeleteHabit("Read"); err != nil {
		t.Errorf("Expected nil error deleting missing habit, got %v", err)
	}
}

func TestListTasks_CreationOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := s.AddTask(title, "", models.PriorityLow, nil); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	tasks := s.ListTasks(true)
	if len(tasks) != len(titles) {
		t.Fatalf("Expected %d tasks, got %d", len(titles), len(tasks))
	}
	for i, task := range tasks {
		if task.Title != titles[i] {
			t.Errorf("Expected task %d to be %q, got %q", i, titles[i], task.Title)
		}
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.AddTask("a", "", models.PriorityLow, nil); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := s.AddTask("b", "", models.PriorityHigh, nil); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := s.CompleteTask(1); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	if _, err := s.AddHabit("Read", "", 14); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if _, err := s.AddHabit("Exercise", "", 21); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if _, err := s.CompleteHabit("Read"); err != nil {
		t.Fatalf("CompleteHabit failed: %v", err)
	}

	stats := s.Stats()
	if stats.TotalTasks != 2 || stats.CompletedTasks != 1 || stats.PendingTasks != 1 {
		t.Errorf("Unexpected task stats: %+v", stats)
	}
	if stats.TotalHabits != 2 {
		t.Errorf("Expected 2 habits, got %d", stats.TotalHabits)
	}
	if stats.AverageStreak != 0.5 {
		t.Errorf("Expected average streak 0.5, got %f", stats.AverageStreak)
	}
}

func TestHabitProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		streak   int
		target   int
		expected float64
	}{
		{name: "zero streak", streak: 0, target: 14, expected: 0},
		{name: "halfway", streak: 7, target: 14, expected: 50},
		{name: "capped at 100", streak: 30, target: 14, expected: 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			habit := &models.Habit{CurrentStreak: tt.streak, TargetDays: tt.target}
			if got := habit.Progress(); got != tt.expected {
				t.Errorf("Expected progress %.1f, got %.1f", tt.expected, got)
			}
		})
	}
}
