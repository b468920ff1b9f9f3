package commands

import (
	"github.com/taskhabit/tracker/internal/models"
	"github.com/taskhabit/tracker/internal/store"
)

// seedSampleData populates a fresh store with demo tasks and habits so
// first-time users have something to explore.
func seedSampleData(s *store.Store) error {
	sampleTasks := []struct {
		title       string
		description string
		priority    models.Priority
		tags        []string
	}{
		{"Learn Go generics", "Study how type parameters work", models.PriorityHigh, []string{"learning", "go"}},
		{"Exercise for 30 minutes", "Go for a run or gym", models.PriorityMedium, []string{"health"}},
		{"Read a book chapter", "Continue reading current book", models.PriorityLow, []string{"learning", "reading"}},
	}
	for _, t := range sampleTasks {
		if _, err := s.AddTask(t.title, t.description, t.priority, t.tags); err != nil {
			return err
		}
	}

	sampleHabits := []struct {
		name        string
		description string
		targetDays  int
	}{
		{"Daily coding", "Write code for at least 30 minutes", 30},
		{"Exercise", "Any form of physical activity", 21},
		{"Read", "Read for 15 minutes", 14},
	}
	for _, h := range sampleHabits {
		if _, err := s.AddHabit(h.name, h.description, h.targetDays); err != nil {
			return err
		}
	}
	return nil
}
