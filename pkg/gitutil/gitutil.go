// Package gitutil answers version-control questions for one repository by
// driving the git binary. Every call degrades to a safe default on failure
// (not-ignored, not-tracked, empty history); a failing git never aborts a
// scan. Per-path predicate answers are memoized so each runs at most once
// per scan run.
package gitutil

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Runner executes a git command in dir and returns its stdout.
type Runner func(dir string, args ...string) (string, error)

func execRunner(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	return out.String(), err
}

// Client wraps git queries for a single repository root. Scan workers may
// query it concurrently.
type Client struct {
	dir string
	run Runner

	mu      sync.Mutex
	ignored map[string]bool
	tracked map[string]bool
}

func NewClient(dir string) *Client {
	return &Client{
		dir:     dir,
		run:     execRunner,
		ignored: make(map[string]bool),
		tracked: make(map[string]bool),
	}
}

// NewClientWithRunner is used by tests to substitute the git binary.
func NewClientWithRunner(dir string, run Runner) *Client {
	c := NewClient(dir)
	c.run = run
	return c
}

// IsRepository reports whether the directory is inside a git work tree.
func (c *Client) IsRepository() bool {
	out, err := c.run(c.dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// IsIgnored reports whether the path is ignored by git. A failing call
// (including "not ignored", which git signals via exit status) returns
// false.
func (c *Client) IsIgnored(path string) bool {
	c.mu.Lock()
	if v, ok := c.ignored[path]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	_, err := c.run(c.dir, "check-ignore", "-q", path)
	v := err == nil

	c.mu.Lock()
	c.ignored[path] = v
	c.mu.Unlock()
	return v
}

// IsTracked reports whether the path is currently tracked by git.
func (c *Client) IsTracked(path string) bool {
	c.mu.Lock()
	if v, ok := c.tracked[path]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	out, err := c.run(c.dir, "ls-files", "--error-unmatch", path)
	v := err == nil && strings.TrimSpace(out) != ""

	c.mu.Lock()
	c.tracked[path] = v
	c.mu.Unlock()
	return v
}

// ListHistoricalPaths returns every path that ever appeared in git history,
// relative to the repository root. Errors log a warning and yield an empty
// list.
func (c *Client) ListHistoricalPaths() []string {
	out, err := c.run(c.dir, "log", "--all", "--name-only", "--format=")
	if err != nil {
		color.Yellow("⚠ could not list git history: %v", err)
		return nil
	}

	seen := make(map[string]bool)
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		paths = append(paths, line)
	}
	return paths
}

// LastBlobRef returns a "<commit>:<path>" ref for the most recent commit
// that touched the path, or "" when history has none.
func (c *Client) LastBlobRef(path string) string {
	out, err := c.run(c.dir, "rev-list", "-1", "--all", "--", path)
	if err != nil {
		return ""
	}
	commit := strings.TrimSpace(out)
	if commit == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", commit, path)
}

// ReadBlob fetches the content of a git object ref as lines.
func (c *Client) ReadBlob(ref string) ([]string, error) {
	out, err := c.run(c.dir, "show", ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read git object %s: %w", ref, err)
	}
	return strings.Split(out, "\n"), nil
}
