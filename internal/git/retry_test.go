package git

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner returns the queued errors in order, then succeeds.
type scriptedRunner struct {
	errs  []error
	calls []string
}

func (s *scriptedRunner) Run(_ context.Context, path, subcommand string, _ ...string) (string, error) {
	s.calls = append(s.calls, subcommand+" "+path)

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]

		return "", err
	}

	return "ok", nil
}

func newTestRetryRunner(inner Runner, retries uint) *RetryRunner {
	r := NewRetryRunner(inner, retries)
	r.NewBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }

	return r
}

func TestRetryRunner_RecoversTransientFetch(t *testing.T) {
	inner := &scriptedRunner{errs: []error{
		NewGitError("/a", []string{"fetch"}, "fatal: Could not read from remote repository.", errors.New("exit status 128")),
	}}

	out, err := newTestRetryRunner(inner, 2).Run(context.Background(), "/a", "fetch")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Len(t, inner.calls, 2)
}

func TestRetryRunner_GivesUp(t *testing.T) {
	transient := errors.New("timeout")
	inner := &scriptedRunner{errs: []error{transient, transient, transient, transient}}

	_, err := newTestRetryRunner(inner, 2).Run(context.Background(), "/a", "fetch")
	require.Error(t, err)
	assert.Len(t, inner.calls, 3)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, 3, netErr.Attempts)
	assert.ErrorIs(t, err, transient)
}

func TestRetryRunner_PermanentErrors(t *testing.T) {
	inner := &scriptedRunner{errs: []error{
		NewGitError("/a", []string{"fetch"}, "fatal: not a git repository", errors.New("exit status 128")),
	}}

	_, err := newTestRetryRunner(inner, 5).Run(context.Background(), "/a", "fetch")
	require.Error(t, err)
	assert.True(t, IsNotRepository(err))
	assert.Len(t, inner.calls, 1)
}

func TestRetryRunner_OnlyRetriesFetch(t *testing.T) {
	inner := &scriptedRunner{errs: []error{errors.New("boom")}}

	_, err := newTestRetryRunner(inner, 3).Run(context.Background(), "/a", "pull")
	require.Error(t, err)
	assert.Len(t, inner.calls, 1)
}

func TestRetryRunner_ZeroRetriesPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedRunner{errs: []error{boom}}

	_, err := newTestRetryRunner(inner, 0).Run(context.Background(), "/a", "fetch")
	assert.Same(t, boom, err)
	assert.Len(t, inner.calls, 1)
}
