package git

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		check  func(error) bool
	}{
		{"not repository", "fatal: not a git repository (or any of the parent directories): .git", IsNotRepository},
		{"auth failed", "remote: Authentication failed for 'https://example.com/x.git/'", IsAuthRequired},
		{"permission denied", "git@example.com: Permission denied (publickey).", IsAuthRequired},
		{"network", "fatal: Could not read from remote repository.", IsNetwork},
		{"resolve host", "fatal: unable to access 'https://x/': Could not resolve host: x", IsNetwork},
		{"no upstream", "There is no tracking information for the current branch.", IsNoUpstream},
		{"conflict", "CONFLICT (content): Merge conflict in a.txt", IsConflict},
		{"not fast forward", "fatal: Not possible to fast-forward, aborting.", IsNotFastForward},
		{"detached", "You are not currently on a branch.", IsDetachedHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGitError("/repo", []string{"pull"}, tt.stderr, errors.New("exit status 1"))
			if !tt.check(err) {
				t.Errorf("classifier did not match stderr %q", tt.stderr)
			}

			wrapped := fmt.Errorf("outer: %w", err)
			if !tt.check(wrapped) {
				t.Error("classifier should see through wrapping")
			}

			if Hint(err) == "" {
				t.Error("Hint() should describe a classified error")
			}
		})
	}
}

func TestClassifiers_Nil(t *testing.T) {
	if IsNotRepository(nil) || IsAuthRequired(nil) || IsConflict(nil) {
		t.Error("nil error must not match any classifier")
	}

	if Hint(nil) != "" {
		t.Error("Hint(nil) should be empty")
	}

	if Hint(errors.New("something else")) != "" {
		t.Error("Hint() should be empty for unclassified errors")
	}
}

func TestGetExitCode(t *testing.T) {
	if got := GetExitCode(nil); got != 0 {
		t.Errorf("GetExitCode(nil) = %d, want 0", got)
	}

	if got := GetExitCode(errors.New("plain")); got != -1 {
		t.Errorf("GetExitCode(plain) = %d, want -1", got)
	}

	gitErr := &GitError{ExitCode: 128}
	if got := GetExitCode(fmt.Errorf("wrapped: %w", gitErr)); got != 128 {
		t.Errorf("GetExitCode(GitError) = %d, want 128", got)
	}
}

func TestGitError_Error(t *testing.T) {
	inner := errors.New("exit status 1")

	withStderr := NewGitError("/repo", []string{"fetch"}, "fatal: boom\n", inner)
	if got, want := withStderr.Error(), "git fetch in /repo: fatal: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := NewGitError("/repo", []string{"status"}, "", inner)
	if got, want := bare.Error(), "git status in /repo: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(bare, inner) {
		t.Error("GitError should unwrap to the process error")
	}
}

func TestNetworkError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{Operation: "fetch", Err: inner, Attempts: 3}

	if got, want := err.Error(), "fetch failed after 3 attempts: connection refused"; got != want {
		t.Errorf("NetworkError.Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the inner error")
	}
}
