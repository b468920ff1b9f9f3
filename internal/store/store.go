// Package store owns the in-memory task and habit collections and their
// persistence to a single JSON snapshot file. Every mutating operation
// rewrites the snapshot before it returns, so after a successful call the
// on-disk state always reflects memory.
package store

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/taskhabit/tracker/internal/models"
	"go.uber.org/zap"
)

// Store is the authoritative owner of all tasks and habits. It is designed
// for a single writer; the mutex only serializes access when the store is
// shared between HTTP handlers.
type Store struct {
	mu         sync.Mutex
	path       string
	log        *zap.Logger
	tasks      []*models.Task
	habits     []*models.Habit
	nextTaskID int

	// now is overridable in tests to simulate different calendar dates
	now func() time.Time
}

// New creates a store backed by the snapshot file at path. A missing file
// yields an empty store with a nil error. An unreadable or malformed file
// also yields an empty, fully usable store, but the load error is returned
// so the caller can report it.
func New(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		path:       path,
		log:        log,
		nextTaskID: 1,
		now:        time.Now,
	}

	snap, err := readSnapshot(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		log.Warn("failed_to_load_data_file",
			zap.String("path", path),
			zap.Error(err),
		)
		return s, err
	}

	s.tasks = snap.Tasks
	s.habits = snap.Habits
	s.nextTaskID = snap.NextTaskID

	return s, nil
}

// Path returns the location of the backing snapshot file
func (s *Store) Path() string {
	return s.path
}

// save rewrites the full snapshot. Callers must hold s.mu.
func (s *Store) save() error {
	snap := &snapshot{
		Tasks:      s.tasks,
		Habits:     s.habits,
		NextTaskID: s.nextTaskID,
	}
	return writeSnapshot(s.path, snap)
}

// AddTask creates a new pending task and persists it. Task ids are assigned
// monotonically starting at 1 and are never reused, even after deletion.
func (s *Store) AddTask(title, description string, priority models.Priority, tags []string) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if tags == nil {
		tags = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := &models.Task{
		ID:          s.nextTaskID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      models.TaskStatusPending,
		CreatedAt:   s.now(),
		Tags:        tags,
	}

	s.tasks = append(s.tasks, task)
	s.nextTaskID++

	if err := s.save(); err != nil {
		return nil, err
	}

	s.log.Info("task_added",
		zap.Int("id", task.ID),
		zap.String("priority", string(task.Priority)),
	)

	return task, nil
}

// CompleteTask marks the task with the given id as completed and records the
// completion time. Completing an already-completed task refreshes the
// timestamp; there is deliberately no guard against it.
func (s *Store) CompleteTask(id int) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, task := range s.tasks {
		if task.ID != id {
			continue
		}
		now := s.now()
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &now

		if err := s.save(); err != nil {
			return nil, err
		}

		s.log.Info("task_completed", zap.Int("id", task.ID))
		return task, nil
	}

	return nil, ErrTaskNotFound
}

// DeleteTask removes the task with the given id. Deleting a missing task is
// a no-op; the id counter is never rewound.
func (s *Store) DeleteTask(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	removed := false
	for _, task := range s.tasks {
		if task.ID == id {
			removed = true
			continue
		}
		kept = append(kept, task)
	}
	s.tasks = kept

	if !removed {
		return nil
	}

	if err := s.save(); err != nil {
		return err
	}

	s.log.Info("task_deleted", zap.Int("id", id))
	return nil
}

// AddHabit creates a new habit with zeroed streak counters and persists it.
// Name uniqueness is not enforced; lookups match the first habit whose name
// compares equal case-insensitively.
func (s *Store) AddHabit(name, description string, targetDays int) (*models.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if targetDays < 1 {
		return nil, ErrInvalidTargetDays
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habit := &models.Habit{
		Name:           name,
		Description:    description,
		TargetDays:     targetDays,
		CompletedDates: []string{},
		CreatedAt:      s.now(),
	}

	s.habits = append(s.habits, habit)

	if err := s.save(); err != nil {
		return nil, err
	}

	s.log.Info("habit_added",
		zap.String("name", habit.Name),
		zap.Int("target_days", habit.TargetDays),
	)

	return habit, nil
}

// CompleteHabit records today's completion for the named habit (matched
// case-insensitively). A second completion on the same calendar date returns
// ErrHabitAlreadyDone without mutating anything. Streaks are incremented on
// every completion regardless of calendar continuity; a gap of several days
// does not reset the counter.
func (s *Store) CompleteHabit(name string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format(models.DateLayout)

	for _, habit := range s.habits {
		if !strings.EqualFold(habit.Name, name) {
			continue
		}
		if habit.CompletedOn(today) {
			return habit, ErrHabitAlreadyDone
		}

		habit.CompletedDates = append(habit.CompletedDates, today)
		habit.CurrentStreak++
		if habit.CurrentStreak > habit.LongestStreak {
			habit.LongestStreak = habit.CurrentStreak
		}

		if err := s.save(); err != nil {
			return nil, err
		}

		s.log.Info("habit_completed",
			zap.String("name", habit.Name),
			zap.Int("streak", habit.CurrentStreak),
		)
		return habit, nil
	}

	return nil, ErrHabitNotFound
}

// DeleteHabit removes the habit with the exactly matching name. Deleting a
// missing habit is a no-op.
func (s *Store) DeleteHabit(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.habits[:0]
	removed := false
	for _, habit := range s.habits {
		if habit.Name == name {
			removed = true
			continue
		}
		kept = append(kept, habit)
	}
	s.habits = kept

	if !removed {
		return nil
	}

	if err := s.save(); err != nil {
		return err
	}

	s.log.Info("habit_deleted", zap.String("name", name))
	return nil
}

// ListTasks returns tasks in creation order, optionally filtering out
// completed ones
func (s *Store) ListTasks(includeCompleted bool) []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]*models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if !includeCompleted && task.Status == models.TaskStatusCompleted {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// ListHabits returns all habits in creation order
func (s *Store) ListHabits() []*models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits := make([]*models.Habit, len(s.habits))
	copy(habits, s.habits)
	return habits
}

// Stats summarizes the current task and habit state
func (s *Store) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.Stats{
		TotalTasks:  len(s.tasks),
		TotalHabits: len(s.habits),
	}

	for _, task := range s.tasks {
		if task.Status == models.TaskStatusCompleted {
			stats.CompletedTasks++
		}
	}
	stats.PendingTasks = stats.TotalTasks - stats.CompletedTasks

	if len(s.habits) > 0 {
		total := 0
		for _, habit := range s.habits {
			total += habit.CurrentStreak
		}
		stats.AverageStreak = float64(total) / float64(len(s.habits))
	}

	return stats
}

// Empty reports whether the store holds no tasks and no habits. The CLI uses
// it to decide whether to seed sample data on first run.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks) == 0 && len(s.habits) == 0
}
