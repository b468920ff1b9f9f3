// Package github bridges the tracker to the GitHub CLI. All operations
// shell out to `gh`, so the user's existing authentication and repo
// detection are reused instead of reimplementing the API client.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskhabit/tracker/internal/models"
)

// ErrNotAuthenticated is returned when `gh auth status` fails or the
// binary is missing from PATH.
var ErrNotAuthenticated = errors.New("not authenticated with GitHub; run 'gh auth login' first")

// DefaultListLimit bounds issue and PR listings.
const DefaultListLimit = 10

// runner executes a gh invocation and returns its stdout. It exists so
// tests can exercise command construction and output parsing without a
// gh binary.
type runner func(ctx context.Context, args ...string) ([]byte, error)

// Issue is the subset of gh's issue JSON the tracker displays.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Labels    []Label   `json:"labels"`
	Assignees []Account `json:"assignees"`
	CreatedAt time.Time `json:"createdAt"`
}

// PullRequest is the subset of gh's PR JSON the tracker displays.
type PullRequest struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	State       string    `json:"state"`
	Author      Account   `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	HeadRefName string    `json:"headRefName"`
}

// Label is a named issue label.
type Label struct {
	Name string `json:"name"`
}

// Account identifies a GitHub user.
type Account struct {
	Login string `json:"login"`
}

// Client wraps the gh CLI.
type Client struct {
	run           runner
	log           *zap.Logger
	authenticated bool
}

// NewClient probes `gh auth status` once and remembers the result.
// Construction never fails; unauthenticated clients return
// ErrNotAuthenticated from every operation.
func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{run: execGH, log: log}
	c.authenticated = c.checkAuth()
	return c
}

func execGH(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("gh %s: %s: %w", args[0], msg, err)
		}
		return nil, fmt.Errorf("gh %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

func (c *Client) checkAuth() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := c.run(ctx, "auth", "status"); err != nil {
		c.log.Debug("gh_auth_check_failed", zap.Error(err))
		return false
	}
	return true
}

// Authenticated reports whether the gh CLI had a valid login when the
// client was constructed.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// CreateIssue creates an issue in the current repository and returns
// its URL.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (string, error) {
	if !c.authenticated {
		return "", ErrNotAuthenticated
	}

	out, err := c.run(ctx, issueCreateArgs(title, body, labels)...)
	if err != nil {
		return "", fmt.Errorf("failed to create issue: %w", err)
	}

	url := strings.TrimSpace(string(out))
	c.log.Info("github_issue_created", zap.String("url", url))
	return url, nil
}

// ListIssues returns up to limit issues in the given state ("open",
// "closed" or "all").
func (c *Client) ListIssues(ctx context.Context, state string, limit int) ([]Issue, error) {
	if !c.authenticated {
		return nil, ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	out, err := c.run(ctx,
		"issue", "list",
		"--state", state,
		"--limit", strconv.Itoa(limit),
		"--json", "number,title,state,labels,assignees,createdAt",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	issues, err := decodeList[Issue](out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse issue list: %w", err)
	}
	return issues, nil
}

// CreatePR opens a pull request from the current branch against base
// and returns its URL.
func (c *Client) CreatePR(ctx context.Context, title, body, base string) (string, error) {
	if !c.authenticated {
		return "", ErrNotAuthenticated
	}

	out, err := c.run(ctx, prCreateArgs(title, body, base)...)
	if err != nil {
		return "", fmt.Errorf("failed to create pull request: %w", err)
	}

	url := strings.TrimSpace(string(out))
	c.log.Info("github_pr_created", zap.String("url", url))
	return url, nil
}

// ListPRs returns up to limit pull requests in the given state.
func (c *Client) ListPRs(ctx context.Context, state string, limit int) ([]PullRequest, error) {
	if !c.authenticated {
		return nil, ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	out, err := c.run(ctx,
		"pr", "list",
		"--state", state,
		"--limit", strconv.Itoa(limit),
		"--json", "number,title,state,author,createdAt,headRefName",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	prs, err := decodeList[PullRequest](out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pull request list: %w", err)
	}
	return prs, nil
}

// SyncTask mirrors a task as a GitHub issue. Task tags become labels
// along with a priority-<level> label, and the issue body carries the
// description, priority and creation time.
func (c *Client) SyncTask(ctx context.Context, task *models.Task) (string, error) {
	return c.CreateIssue(ctx, task.Title, TaskIssueBody(task), TaskLabels(task))
}

// TaskLabels builds the label set for a synced task.
func TaskLabels(task *models.Task) []string {
	labels := make([]string, 0, len(task.Tags)+1)
	labels = append(labels, task.Tags...)
	labels = append(labels, "priority-"+string(task.Priority))
	return labels
}

// TaskIssueBody renders the markdown body for a synced task.
func TaskIssueBody(task *models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Description:** %s\n\n", task.Description)
	fmt.Fprintf(&b, "**Priority:** %s\n\n", task.Priority)
	fmt.Fprintf(&b, "**Created:** %s", task.CreatedAt.Format(time.RFC3339))
	return b.String()
}

func issueCreateArgs(title, body string, labels []string) []string {
	args := []string{"issue", "create", "--title", title}
	if body != "" {
		args = append(args, "--body", body)
	}
	if len(labels) > 0 {
		args = append(args, "--label", strings.Join(labels, ","))
	}
	return args
}

func prCreateArgs(title, body, base string) []string {
	if base == "" {
		base = "main"
	}
	args := []string{"pr", "create", "--title", title, "--base", base}
	if body != "" {
		args = append(args, "--body", body)
	}
	return args
}

func decodeList[T any](out []byte) ([]T, error) {
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(out, &items); err != nil {
		return nil, err
	}
	return items, nil
}
