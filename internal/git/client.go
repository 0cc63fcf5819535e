// Package git runs git subcommands against local working copies and
// classifies their failures.
// Pattern inspired by github.com/cli/cli
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one git subcommand in a repository directory and returns
// its captured standard output.
type Runner interface {
	Run(ctx context.Context, path, subcommand string, args ...string) (string, error)
}

// Client runs the git binary found on PATH.
type Client struct {
	GitPath string   // Path to git executable
	Env     []string // Extra environment appended to the process environment
}

// NewClient creates a new git client
func NewClient() *Client {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		gitPath = "git"
	}

	return &Client{
		GitPath: gitPath,
		// status text is matched literally, so keep git output untranslated
		Env: []string{"LC_ALL=C", "GIT_TERMINAL_PROMPT=0"},
	}
}

// Command creates a git command rooted at dir.
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, dir string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if dir != "" {
		cmd.Dir = dir
	}

	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	return cmd
}

// Run implements Runner. A nonzero exit is returned as a *GitError carrying
// the captured stderr.
func (c *Client) Run(ctx context.Context, path, subcommand string, args ...string) (string, error) {
	all := append([]string{subcommand}, args...)
	cmd := c.Command(ctx, path, all...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), NewGitError(path, all, stderr.String(), err)
	}

	return stdout.String(), nil
}

// GitError represents a git command error
type GitError struct {
	Path     string
	Args     []string
	ExitCode int
	Stderr   string
	err      error
}

func (e *GitError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")

	if e.Stderr == "" {
		return fmt.Sprintf("%s in %s: %v", cmd, e.Path, e.err)
	}

	return fmt.Sprintf("%s in %s: %s", cmd, e.Path, strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}
