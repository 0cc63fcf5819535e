package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Common error messages from git
const (
	errMsgNotRepository    = "not a git repository"
	errMsgNoUpstream       = "no tracking information"
	errMsgAuthFailed       = "Authentication failed"
	errMsgPermissionDenied = "Permission denied"
	errMsgCouldNotRead     = "could not read from remote repository"
	errMsgResolveHost      = "could not resolve host"
	errMsgConflict         = "CONFLICT"
	errMsgNotFastForward   = "Not possible to fast-forward"
	errMsgDetachedHead     = "not currently on a branch"
)

// IsNotRepository checks if the error indicates not a git repository
func IsNotRepository(err error) bool {
	return containsError(err, errMsgNotRepository)
}

// IsAuthRequired checks if the error indicates authentication is required
func IsAuthRequired(err error) bool {
	return containsError(err, errMsgAuthFailed) || containsError(err, errMsgPermissionDenied)
}

// IsNetwork checks if the error indicates the remote could not be reached
func IsNetwork(err error) bool {
	return containsError(err, errMsgCouldNotRead) || containsError(err, errMsgResolveHost)
}

// IsNoUpstream checks if the error indicates no upstream branch configured
func IsNoUpstream(err error) bool {
	return containsError(err, errMsgNoUpstream)
}

// IsConflict checks if the error indicates a merge conflict
func IsConflict(err error) bool {
	return containsError(err, errMsgConflict)
}

// IsNotFastForward checks if a fast-forward only pull was refused
func IsNotFastForward(err error) bool {
	return containsError(err, errMsgNotFastForward)
}

// IsDetachedHead checks if the error indicates HEAD is detached
func IsDetachedHead(err error) bool {
	return containsError(err, errMsgDetachedHead)
}

// Hint returns a short remediation hint for a classified error, or "".
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case IsNotRepository(err):
		return "the directory is not a git working copy"
	case IsAuthRequired(err):
		return "credentials for the remote are missing or rejected"
	case IsNetwork(err):
		return "the remote could not be reached"
	case IsNoUpstream(err):
		return "the current branch has no upstream"
	case IsDetachedHead(err):
		return "HEAD is detached"
	case IsNotFastForward(err), IsConflict(err):
		return "the branch has diverged from its upstream"
	}

	return ""
}

// containsError checks if the error contains a specific message
func containsError(err error, msg string) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return strings.Contains(strings.ToLower(gitErr.Stderr), strings.ToLower(msg))
	}

	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(msg))
}

// GetExitCode returns the exit code from a git error, or -1 if not available
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// NewGitError creates a GitError from command output and error
func NewGitError(path string, args []string, stderr string, err error) *GitError {
	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &GitError{
		Path:     path,
		ExitCode: exitCode,
		Stderr:   stderr,
		Args:     args,
		err:      err,
	}
}

// NetworkError wraps a failure that persisted through retries
type NetworkError struct {
	Operation string
	Err       error
	Attempts  int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Operation, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
