package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
)

// crontab edits the user's crontab through `crontab -l` and `crontab <file>`.
// Idempotence is by membership: a line already containing the command is
// never added again.
type crontab struct {
	runner CommandRunner
	fs     afero.Fs
	logger *slog.Logger
}

func (c *crontab) Name() string {
	return "crontab"
}

// CronExpression returns the crontab schedule running every n minutes.
func CronExpression(minutes int) string {
	return fmt.Sprintf("*/%d * * * *", minutes)
}

func (c *crontab) Register(ctx context.Context, job JobSpec) error {
	table, err := c.read(ctx)
	if err != nil {
		return err
	}

	return c.stage(ctx, table, func(lines []string) ([]string, bool) {
		if containsCommand(lines, job.Command) {
			c.logger.Info("job already scheduled", slog.String("command", job.Command))
			return lines, false
		}

		return append(lines, CronExpression(job.FrequencyMinutes)+" "+job.Command), true
	})
}

func (c *crontab) Unregister(ctx context.Context, job JobSpec) error {
	table, err := c.read(ctx)
	if err != nil {
		return err
	}

	return c.stage(ctx, table, func(lines []string) ([]string, bool) {
		kept := lines[:0:0]

		for _, line := range lines {
			if !strings.Contains(line, job.Command) {
				kept = append(kept, line)
			}
		}

		return kept, len(kept) != len(lines)
	})
}

// read returns the current table. A missing crontab binary or a user without
// a crontab yields an empty table.
func (c *crontab) read(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "crontab", "-l")
	if err == nil {
		return out, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		c.logger.Debug("crontab not installed, starting from an empty table")
		return "", nil
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && strings.Contains(strings.ToLower(cmdErr.Stderr), "no crontab for") {
		return "", nil
	}

	return "", fmt.Errorf("failed to read crontab: %w", err)
}

// stage writes table to a temporary file, applies edit to its lines, and
// installs the file if edit reports a change. The file is always removed.
func (c *crontab) stage(ctx context.Context, table string, edit func([]string) ([]string, bool)) error {
	f, err := afero.TempFile(c.fs, "", "autofetch-cron-*")
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}

	name := f.Name()

	defer func() {
		_ = c.fs.Remove(name)
	}()

	lines, changed := edit(splitLines(table))

	content := table
	if changed {
		content = strings.Join(lines, "\n")
		if content != "" {
			content += "\n"
		}
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write staging file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write staging file: %w", err)
	}

	if !changed {
		return nil
	}

	if _, err := c.runner.Run(ctx, "crontab", name); err != nil {
		return fmt.Errorf("failed to install crontab: %w", err)
	}

	return nil
}

func splitLines(table string) []string {
	table = strings.TrimRight(table, "\n")
	if table == "" {
		return nil
	}

	return strings.Split(table, "\n")
}

func containsCommand(lines []string, command string) bool {
	for _, line := range lines {
		if strings.Contains(line, command) {
			return true
		}
	}

	return false
}
