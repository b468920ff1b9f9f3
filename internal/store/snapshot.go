package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/taskhabit/tracker/internal/models"
	"github.com/taskhabit/tracker/internal/validation"
)

// snapshot is the on-disk representation of the full store state.
// It is rewritten in full on every mutation; there is no incremental append
// and no versioning, so the last writer wins.
type snapshot struct {
	Tasks      []*models.Task  `json:"tasks"`
	Habits     []*models.Habit `json:"habits"`
	NextTaskID int             `json:"next_task_id"`
}

// readSnapshot loads and validates a snapshot from path.
// The caller is responsible for treating a missing file as an empty store.
func readSnapshot(path string) (*snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	if err := snap.validate(); err != nil {
		return nil, fmt.Errorf("invalid data file: %w", err)
	}

	// Old files written before the counter existed default to 1
	if snap.NextTaskID < 1 {
		snap.NextTaskID = 1
	}

	return &snap, nil
}

// writeSnapshot persists a snapshot to path, overwriting the previous file in full
func writeSnapshot(path string, snap *snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	return nil
}

// validate rejects snapshots with missing required fields or unrecognized
// priority/status tokens so a corrupted file never leaks into the store
func (s *snapshot) validate() error {
	for i, task := range s.Tasks {
		if task == nil {
			return fmt.Errorf("task %d: empty record", i)
		}
		if task.Title == "" {
			return fmt.Errorf("task %d: missing title", task.ID)
		}
		if err := validation.ValidatePriority(string(task.Priority)); err != nil {
			return fmt.Errorf("task %d: %w", task.ID, err)
		}
		if err := validation.ValidateTaskStatus(string(task.Status)); err != nil {
			return fmt.Errorf("task %d: %w", task.ID, err)
		}
	}

	for i, habit := range s.Habits {
		if habit == nil {
			return fmt.Errorf("habit %d: empty record", i)
		}
		if habit.Name == "" {
			return fmt.Errorf("habit %d: missing name", i)
		}
		if habit.TargetDays < 1 {
			return fmt.Errorf("habit %q: target_days must be positive", habit.Name)
		}
	}

	return nil
}
