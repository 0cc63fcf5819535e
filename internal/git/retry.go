package git

import (
	"context"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryRunner retries selected subcommands with exponential backoff. Errors
// that cannot be cured by retrying (not a repository, bad credentials) are
// returned after the first attempt.
type RetryRunner struct {
	Runner      Runner
	MaxRetries  uint
	Subcommands []string
	NewBackOff  func() backoff.BackOff
}

// NewRetryRunner wraps r so that fetch is attempted up to retries+1 times.
func NewRetryRunner(r Runner, retries uint) *RetryRunner {
	return &RetryRunner{
		Runner:      r,
		MaxRetries:  retries,
		Subcommands: []string{"fetch"},
		NewBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 2 * time.Second
			b.MaxInterval = 30 * time.Second

			return b
		},
	}
}

// Run implements Runner.
func (r *RetryRunner) Run(ctx context.Context, path, subcommand string, args ...string) (string, error) {
	if r.MaxRetries == 0 || !slices.Contains(r.Subcommands, subcommand) {
		return r.Runner.Run(ctx, path, subcommand, args...)
	}

	attempts := 0

	out, err := backoff.Retry(ctx, func() (string, error) {
		attempts++

		out, err := r.Runner.Run(ctx, path, subcommand, args...)
		if err != nil && (IsNotRepository(err) || IsAuthRequired(err)) {
			return out, backoff.Permanent(err)
		}

		return out, err
	}, backoff.WithBackOff(r.NewBackOff()), backoff.WithMaxTries(r.MaxRetries+1))
	if err != nil && attempts > 1 {
		return out, &NetworkError{Operation: subcommand, Err: err, Attempts: attempts}
	}

	return out, err
}
