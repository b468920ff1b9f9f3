package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taskhabit/tracker/internal/config"
	"github.com/taskhabit/tracker/internal/github"
	"github.com/taskhabit/tracker/internal/logger"
	"github.com/taskhabit/tracker/internal/models"
	"github.com/taskhabit/tracker/internal/store"
	"github.com/taskhabit/tracker/internal/validation"
)

// githubBridge is the slice of the gh client the prompt loop uses.
type githubBridge interface {
	Authenticated() bool
	CreateIssue(ctx context.Context, title, body string, labels []string) (string, error)
	ListIssues(ctx context.Context, state string, limit int) ([]github.Issue, error)
	CreatePR(ctx context.Context, title, body, base string) (string, error)
	ListPRs(ctx context.Context, state string, limit int) ([]github.PullRequest, error)
	SyncTask(ctx context.Context, task *models.Task) (string, error)
}

// app wires the prompt loop to its collaborators. Input and output are
// injected so tests can script a session.
type app struct {
	store *store.Store
	gh    githubBridge
	log   *zap.Logger
	in    *bufio.Scanner
	out   io.Writer
}

// NewRunCmd creates the run command, the interactive prompt loop.
func NewRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive prompt loop",
		Long:  "Start the interactive prompt loop for managing tasks and habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context())
		},
	}
}

func runInteractive(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewProductionLogger(false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	s, err := store.New(cfg.DataFile, log)
	if err != nil {
		// The store falls back to empty; keep running but tell the user.
		fmt.Fprintf(os.Stderr, "⚠️ Error loading data: %v\n", err)
	}

	a := &app{
		store: s,
		gh:    github.NewClient(log),
		log:   log,
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
	}

	fmt.Fprintln(a.out, "🚀 Welcome to Personal Task & Habit Tracker!")
	fmt.Fprintln(a.out, "Type 'help' for commands or 'quit' to exit")

	if cfg.SeedSampleData && s.Empty() {
		fmt.Fprintln(a.out, "\n🎉 Setting up sample data...")
		if err := seedSampleData(s); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	return a.loop(ctx)
}

func (a *app) loop(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, "\n💻 > ")
		if !a.in.Scan() {
			fmt.Fprintln(a.out, "\n👋 Goodbye!")
			return a.in.Err()
		}

		if quit := a.dispatch(ctx, a.in.Text()); quit {
			return nil
		}
	}
}

// dispatch executes a single command line and reports whether the loop
// should exit.
func (a *app) dispatch(ctx context.Context, line string) bool {
	command := strings.ToLower(strings.TrimSpace(line))

	switch {
	case command == "":
		return false

	case command == "quit" || command == "exit" || command == "q":
		fmt.Fprintln(a.out, "👋 Goodbye! Keep being productive!")
		return true

	case command == "help":
		fmt.Fprint(a.out, helpText)

	case command == "list":
		a.renderTasks(false)

	case command == "list all":
		a.renderTasks(true)

	case command == "add task":
		a.addTaskInteractive()

	case strings.HasPrefix(command, "complete "):
		a.completeTask(command)

	case command == "habits":
		a.renderHabits()

	case command == "add habit":
		a.addHabitInteractive()

	case strings.HasPrefix(command, "done "):
		a.completeHabit(strings.TrimSpace(strings.TrimPrefix(command, "done ")))

	case command == "stats":
		a.renderStats()

	case command == "gh issues" || command == "gh issues all":
		a.listIssues(ctx, listState(command))

	case command == "gh prs" || command == "gh prs all":
		a.listPRs(ctx, listState(command))

	case command == "create issue":
		a.createIssueInteractive(ctx)

	case command == "create pr":
		a.createPRInteractive(ctx)

	case strings.HasPrefix(command, "sync task "):
		a.syncTask(ctx, strings.TrimSpace(strings.TrimPrefix(command, "sync task ")))

	default:
		fmt.Fprintln(a.out, "❓ Unknown command. Type 'help' for available commands.")
	}
	return false
}

// listState maps a listing command to the gh --state value.
func listState(command string) string {
	if strings.HasSuffix(command, " all") {
		return "all"
	}
	return "open"
}

// prompt prints a label and reads one trimmed line, preserving case.
func (a *app) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) addTaskInteractive() {
	title := a.prompt("Task title: ")
	description := a.prompt("Description (optional): ")

	fmt.Fprintln(a.out, "Priority: 1=Low 🟢, 2=Medium 🟡, 3=High 🔴")
	priority := parsePriorityChoice(a.prompt("Priority (1-3): "))

	tags := validation.SplitTags(a.prompt("Tags (comma-separated, optional): "))

	task, err := a.store.AddTask(title, description, priority, tags)
	if err != nil {
		fmt.Fprintf(a.out, "❌ Error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "✅ Task added: %s\n", task.Title)
}

func (a *app) completeTask(command string) {
	fields := strings.Fields(command)
	if len(fields) != 2 {
		fmt.Fprintln(a.out, "❌ Usage: complete <task_id>")
		return
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Fprintln(a.out, "❌ Usage: complete <task_id>")
		return
	}

	task, err := a.store.CompleteTask(id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			fmt.Fprintf(a.out, "❌ Task %d not found\n", id)
			return
		}
		fmt.Fprintf(a.out, "❌ Error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "🎉 Task completed: %s\n", task.Title)
}

func (a *app) addHabitInteractive() {
	name := a.prompt("Habit name: ")
	description := a.prompt("Description (optional): ")

	targetDays := 30
	if raw := a.prompt("Target days (default 30): "); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			targetDays = n
		}
	}

	habit, err := a.store.AddHabit(name, description, targetDays)
	if err != nil {
		fmt.Fprintf(a.out, "❌ Error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "🎯 Habit added: %s\n", habit.Name)
}

func (a *app) completeHabit(name string) {
	habit, err := a.store.CompleteHabit(name)
	switch {
	case errors.Is(err, store.ErrHabitAlreadyDone):
		fmt.Fprintf(a.out, "✨ Already completed %s today!\n", habit.Name)
	case errors.Is(err, store.ErrHabitNotFound):
		fmt.Fprintf(a.out, "❌ Habit '%s' not found\n", name)
	case err != nil:
		fmt.Fprintf(a.out, "❌ Error: %v\n", err)
	default:
		fmt.Fprintf(a.out, "🔥 %s completed! Streak: %d days\n", habit.Name, habit.CurrentStreak)
	}
}

func (a *app) listIssues(ctx context.Context, state string) {
	issues, err := a.gh.ListIssues(ctx, state, github.DefaultListLimit)
	if err != nil {
		fmt.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	a.renderIssues(state, issues)
}

func (a *app) listPRs(ctx context.Context, state string) {
	prs, err := a.gh.ListPRs(ctx, state, github.DefaultListLimit)
	if err != nil {
		fmt.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	a.renderPRs(state, prs)
}

func (a *app) createIssueInteractive(ctx context.Context) {
	title := a.prompt("Issue title: ")
	body := a.prompt("Body (optional): ")
	labels := validation.SplitTags(a.prompt("Labels (comma-separated, optional): "))

	url, err := a.gh.CreateIssue(ctx, title, body, labels)
	if err != nil {
		fmt.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "✅ Issue created: %s\n", url)
}

func (a *app) createPRInteractive(ctx context.Context) {
	title := a.prompt("PR title: ")
	body := a.prompt("Body (optional): ")
	base := a.prompt("Base branch (default main): ")

	url, err := a.gh.CreatePR(ctx, title, body, base)
	if err != nil {
		fmt.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "✅ Pull request created: %s\n", url)
}

func (a *app) syncTask(ctx context.Context, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fmt.Fprintln(a.out, "❌ Usage: sync task <task_id>")
		return
	}

	task, ok := a.findTask(id)
	if !ok {
		fmt.Fprintf(a.out, "❌ Task %d not found\n", id)
		return
	}

	url, err := a.gh.SyncTask(ctx, task)
	if err != nil {
		fmt.Fprintf(a.out, "❌ %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "✅ Issue created: %s\n", url)
}

func (a *app) findTask(id int) (*models.Task, bool) {
	for _, task := range a.store.ListTasks(true) {
		if task.ID == id {
			return task, true
		}
	}
	return nil, false
}

func parsePriorityChoice(choice string) models.Priority {
	switch choice {
	case "1":
		return models.PriorityLow
	case "3":
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}
