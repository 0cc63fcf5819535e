package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/inovacc/autofetch/internal/application"
)

// schtasks registers a named Windows scheduled task. Idempotence is by
// replacement: /F overwrites a task with the same name.
type schtasks struct {
	runner   CommandRunner
	env      Environment
	prompter Prompter
	taskName string
	logger   *slog.Logger
}

func (s *schtasks) Name() string {
	return "schtasks"
}

func (s *schtasks) Register(ctx context.Context, job JobSpec) error {
	if job.User == "" {
		job.User = s.env.Getenv("USERNAME")
	}

	if job.User == "" {
		return errors.New("cannot determine the user for the scheduled task: USERNAME is not set")
	}

	if job.Password == "" {
		password, err := s.prompter.Password("Please enter your windows login password: ")
		if err != nil {
			return err
		}

		job.Password = password
	}

	if _, err := s.runner.Run(ctx, "schtasks", CreateTaskArgs(s.taskName, job)...); err != nil {
		return fmt.Errorf("failed to create scheduled task %s: %w", s.taskName, err)
	}

	s.logger.Info("scheduled task created", slog.String("task", s.taskName), slog.Int("minutes", job.FrequencyMinutes))

	return nil
}

func (s *schtasks) Unregister(ctx context.Context, _ JobSpec) error {
	_, err := s.runner.Run(ctx, "schtasks", "/delete", "/F", "/tn", s.taskName)
	if err == nil {
		return nil
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && strings.Contains(strings.ToLower(cmdErr.Stderr), "cannot find") {
		return nil
	}

	return fmt.Errorf("failed to delete scheduled task %s: %w", s.taskName, err)
}

// CreateTaskArgs builds the schtasks arguments creating or replacing the task.
func CreateTaskArgs(taskName string, job JobSpec) []string {
	if taskName == "" {
		taskName = application.TaskName
	}

	return []string{
		"/create", "/F",
		"/RU", job.User,
		"/RP", job.Password,
		"/sc", "minute",
		"/mo", strconv.Itoa(job.FrequencyMinutes),
		"/tn", taskName,
		"/tr", job.Command,
	}
}
