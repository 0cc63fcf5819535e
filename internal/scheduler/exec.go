package scheduler

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner runs a native scheduler command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

// ExecRunner runs commands with os/exec.
func ExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		sub := ""
		if len(args) > 0 {
			sub = args[0]
		}

		return stdout.String(), &CommandError{Name: name, Subcommand: sub, Stderr: stderr.String(), Err: err}
	}

	return stdout.String(), nil
}
