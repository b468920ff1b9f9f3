package store

import "errors"

var (
	// ErrEmptyTitle is returned when a task is added without a title
	ErrEmptyTitle = errors.New("task title cannot be empty")
	// ErrEmptyName is returned when a habit is added without a name
	ErrEmptyName = errors.New("habit name cannot be empty")
	// ErrInvalidTargetDays is returned when a habit target is not positive
	ErrInvalidTargetDays = errors.New("habit target days must be positive")
	// ErrTaskNotFound is returned when no task matches the given id
	ErrTaskNotFound = errors.New("task not found")
	// ErrHabitNotFound is returned when no habit matches the given name
	ErrHabitNotFound = errors.New("habit not found")
	// ErrHabitAlreadyDone is returned when a habit was already completed today
	ErrHabitAlreadyDone = errors.New("habit already completed today")
)
