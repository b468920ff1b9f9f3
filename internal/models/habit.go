package models

import (
	"time"
)

// DateLayout is the date-only format used for habit completion dates.
// A habit can be completed at most once per calendar date.
const DateLayout = "2006-01-02"

// Habit represents a recurring activity tracked by daily completions
type Habit struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	TargetDays     int       `json:"target_days"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	CompletedDates []string  `json:"completed_dates"`
	CreatedAt      time.Time `json:"created_at"`
}

// CompletedOn reports whether the habit was already completed on the given date
func (h *Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// Progress returns the streak progress toward the target as a percentage, capped at 100
func (h *Habit) Progress() float64 {
	if h.TargetDays <= 0 {
		return 0
	}
	progress := float64(h.CurrentStreak) / float64(h.TargetDays) * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}
