package commands

import (
	"fmt"
	"strings"

	"github.com/taskhabit/tracker/internal/github"
	"github.com/taskhabit/tracker/internal/models"
)

const helpText = `
📚 COMMANDS:
  Tasks:
    list                 - Show pending tasks
    list all             - Show all tasks (including completed)
    add task             - Add a new task (interactive)
    complete <id>        - Mark task as completed

  Habits:
    habits               - Show all habits
    add habit            - Add a new habit (interactive)
    done <habit_name>    - Mark habit as done for today

  GitHub:
    gh issues            - List open GitHub issues
    gh issues all        - List all GitHub issues
    gh prs               - List open pull requests
    gh prs all           - List all pull requests
    create issue         - Create a new GitHub issue (interactive)
    create pr            - Create a pull request (interactive)
    sync task <id>       - Convert task to GitHub issue

  Other:
    stats                - Show statistics
    help                 - Show this help
    quit                 - Exit the application
`

// Glyphs are presentation only; the store keeps stable lowercase tokens.
func priorityGlyph(p models.Priority) string {
	switch p {
	case models.PriorityLow:
		return "🟢"
	case models.PriorityHigh:
		return "🔴"
	default:
		return "🟡"
	}
}

func statusGlyph(s models.TaskStatus) string {
	switch s {
	case models.TaskStatusInProgress:
		return "🔄"
	case models.TaskStatusCompleted:
		return "✅"
	case models.TaskStatusCancelled:
		return "❌"
	default:
		return "⏳"
	}
}

func (a *app) renderTasks(showCompleted bool) {
	tasks := a.store.ListTasks(true)
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "📝 No tasks yet! Add some with 'add task'")
		return
	}

	fmt.Fprintln(a.out, "\n📋 TASKS")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))

	for _, task := range tasks {
		if !showCompleted && task.Status == models.TaskStatusCompleted {
			continue
		}

		tags := ""
		if len(task.Tags) > 0 {
			tags = fmt.Sprintf(" [%s]", strings.Join(task.Tags, ", "))
		}
		fmt.Fprintf(a.out, "%2d. %s %s %s%s\n",
			task.ID, statusGlyph(task.Status), priorityGlyph(task.Priority), task.Title, tags)
		if task.Description != "" {
			fmt.Fprintf(a.out, "    📝 %s\n", task.Description)
		}
	}
}

func (a *app) renderHabits() {
	habits := a.store.ListHabits()
	if len(habits) == 0 {
		fmt.Fprintln(a.out, "🎯 No habits yet! Add some with 'add habit'")
		return
	}

	fmt.Fprintln(a.out, "\n🎯 HABITS")
	fmt.Fprintln(a.out, strings.Repeat("=", 50))

	for _, habit := range habits {
		progress := habit.Progress()
		fmt.Fprintf(a.out, "🔥 %s\n", habit.Name)
		fmt.Fprintf(a.out, "   %s %.1f%% (%d/%d days)\n",
			progressBar(progress, 20), progress, habit.CurrentStreak, habit.TargetDays)
		fmt.Fprintf(a.out, "   🏆 Longest streak: %d days\n", habit.LongestStreak)
		if habit.Description != "" {
			fmt.Fprintf(a.out, "   📝 %s\n", habit.Description)
		}
		fmt.Fprintln(a.out)
	}
}

// progressBar renders a fixed-width bar of filled and empty cells.
func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(float64(width) * percent / 100)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (a *app) renderStats() {
	stats := a.store.Stats()

	fmt.Fprintln(a.out, "\n📊 STATISTICS")
	fmt.Fprintln(a.out, strings.Repeat("=", 30))
	fmt.Fprintf(a.out, "📋 Tasks: %d/%d completed\n", stats.CompletedTasks, stats.TotalTasks)
	fmt.Fprintf(a.out, "🎯 Habits: %d being tracked\n", stats.TotalHabits)
	if stats.TotalHabits > 0 {
		fmt.Fprintf(a.out, "🔥 Average streak: %.1f days\n", stats.AverageStreak)
	}
}

func (a *app) renderIssues(state string, issues []github.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(a.out, "📝 No %s issues found\n", state)
		return
	}

	fmt.Fprintf(a.out, "\n🐛 GITHUB ISSUES (%s)\n", strings.ToUpper(state))
	fmt.Fprintln(a.out, strings.Repeat("=", 60))

	for _, issue := range issues {
		labels := ""
		if len(issue.Labels) > 0 {
			names := make([]string, len(issue.Labels))
			for i, l := range issue.Labels {
				names[i] = l.Name
			}
			labels = fmt.Sprintf(" [%s]", strings.Join(names, ", "))
		}

		assignees := ""
		if len(issue.Assignees) > 0 {
			logins := make([]string, len(issue.Assignees))
			for i, acc := range issue.Assignees {
				logins[i] = acc.Login
			}
			assignees = fmt.Sprintf(" 👤 %s", strings.Join(logins, ", "))
		}

		fmt.Fprintf(a.out, "#%d %s%s%s\n", issue.Number, issue.Title, labels, assignees)
	}
}

func (a *app) renderPRs(state string, prs []github.PullRequest) {
	if len(prs) == 0 {
		fmt.Fprintf(a.out, "📝 No %s pull requests found\n", state)
		return
	}

	fmt.Fprintf(a.out, "\n🔀 PULL REQUESTS (%s)\n", strings.ToUpper(state))
	fmt.Fprintln(a.out, strings.Repeat("=", 60))

	for _, pr := range prs {
		author := pr.Author.Login
		if author == "" {
			author = "Unknown"
		}
		fmt.Fprintf(a.out, "#%d %s (by %s from %s)\n", pr.Number, pr.Title, author, pr.HeadRefName)
	}
}
