package models

// Stats summarizes the tracked tasks and habits
type Stats struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	TotalHabits    int     `json:"total_habits"`
	AverageStreak  float64 `json:"average_streak"`
}
