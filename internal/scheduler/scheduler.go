// Package scheduler installs a recurring invocation of autofetch into the
// host's native periodic job mechanism.
//
// One Platform strategy is chosen from the host OS when the Registrar is
// built: crontab on Unix-like systems, schtasks on Windows. Any other OS gets
// an UnsupportedPlatformError and nothing is changed. Registering the same job
// twice leaves the host in the same state as registering it once.
//
// The job table is read, edited and written back without locking against
// other editors; concurrent registrations by autofetch itself are serialized
// with a file lock when a lock path is configured.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/gofrs/flock"
	"github.com/inovacc/autofetch/internal/application"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/spf13/afero"
)

// JobSpec describes the job to install. User and Password are only used on
// Windows and, when empty, are filled from the environment and the prompter.
type JobSpec struct {
	FrequencyMinutes int
	Command          string
	User             string
	Password         string
}

// Platform installs and removes the job on one class of host OS.
type Platform interface {
	Name() string
	Register(ctx context.Context, job JobSpec) error
	Unregister(ctx context.Context, job JobSpec) error
}

// Registrar registers the autofetch job on the host.
type Registrar struct {
	goos       string
	runner     CommandRunner
	fs         afero.Fs
	env        Environment
	prompter   Prompter
	logger     *slog.Logger
	lockPath   string
	executable func() (string, error)
	minutes    int

	platform Platform
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(r *Registrar) { r.goos = goos }
}

// WithCommandRunner sets the runner for native scheduler commands.
func WithCommandRunner(cr CommandRunner) Option {
	return func(r *Registrar) { r.runner = cr }
}

// WithFs sets the file system used to stage the crontab.
func WithFs(fs afero.Fs) Option {
	return func(r *Registrar) { r.fs = fs }
}

// WithEnvironment sets the source of the scheduled task user.
func WithEnvironment(env Environment) Option {
	return func(r *Registrar) { r.env = env }
}

// WithPrompter sets the source of the scheduled task password.
func WithPrompter(p Prompter) Option {
	return func(r *Registrar) { r.prompter = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registrar) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLockPath serializes registrations through a lock file at path.
func WithLockPath(path string) Option {
	return func(r *Registrar) { r.lockPath = path }
}

// WithExecutable overrides how the path of the running binary is found.
func WithExecutable(fn func() (string, error)) Option {
	return func(r *Registrar) { r.executable = fn }
}

// WithInterval sets the interval used by SchedulePull.
func WithInterval(minutes int) Option {
	return func(r *Registrar) { r.minutes = minutes }
}

// New creates a Registrar for the current host.
func New(opts ...Option) *Registrar {
	r := &Registrar{
		goos:       runtime.GOOS,
		runner:     ExecRunner(),
		fs:         afero.NewOsFs(),
		env:        OSEnvironment(),
		prompter:   NewTerminalPrompter(),
		logger:     slog.Default(),
		executable: os.Executable,
		minutes:    model.DefaultScheduleMinutes,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.platform = r.platformFor(r.goos)

	return r
}

func (r *Registrar) platformFor(goos string) Platform {
	switch goos {
	case "linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return &crontab{runner: r.runner, fs: r.fs, logger: r.logger}
	case "windows":
		return &schtasks{
			runner:   r.runner,
			env:      r.env,
			prompter: r.prompter,
			taskName: application.TaskName,
			logger:   r.logger,
		}
	}

	return nil
}

// Platform returns the selected strategy, or an UnsupportedPlatformError.
func (r *Registrar) Platform() (Platform, error) {
	if r.platform == nil {
		return nil, &UnsupportedPlatformError{OS: r.goos}
	}

	return r.platform, nil
}

// RegisterJob installs commandLine to run every frequencyMinutes minutes.
// Repeated calls with the same arguments leave one job in place.
func (r *Registrar) RegisterJob(ctx context.Context, frequencyMinutes int, commandLine string) error {
	if frequencyMinutes < 1 || frequencyMinutes > 59 {
		return fmt.Errorf("frequency must be between 1 and 59 minutes, got %d", frequencyMinutes)
	}

	if commandLine == "" {
		return errors.New("command line is required")
	}

	p, err := r.Platform()
	if err != nil {
		r.logger.Error("the operating system is not recognized", slog.String("os", r.goos))
		return err
	}

	unlock, err := r.lock()
	if err != nil {
		return err
	}
	defer unlock()

	r.logger.Debug("registering job",
		slog.String("platform", p.Name()),
		slog.Int("minutes", frequencyMinutes),
		slog.String("command", commandLine),
	)

	return p.Register(ctx, JobSpec{FrequencyMinutes: frequencyMinutes, Command: commandLine})
}

// UnregisterJob removes the job running commandLine. A missing job is not an
// error.
func (r *Registrar) UnregisterJob(ctx context.Context, commandLine string) error {
	p, err := r.Platform()
	if err != nil {
		return err
	}

	unlock, err := r.lock()
	if err != nil {
		return err
	}
	defer unlock()

	return p.Unregister(ctx, JobSpec{Command: commandLine})
}

// SelfCommand returns the command line invoking this binary's batch pull.
func (r *Registrar) SelfCommand() (string, error) {
	exe, err := r.executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate the autofetch executable: %w", err)
	}

	return application.SelfCommand(exe), nil
}

// SchedulePull registers the batch pull of this binary at the configured
// interval.
func (r *Registrar) SchedulePull(ctx context.Context) error {
	cmd, err := r.SelfCommand()
	if err != nil {
		return err
	}

	return r.RegisterJob(ctx, r.minutes, cmd)
}

// UnschedulePull removes the job installed by SchedulePull.
func (r *Registrar) UnschedulePull(ctx context.Context) error {
	cmd, err := r.SelfCommand()
	if err != nil {
		return err
	}

	return r.UnregisterJob(ctx, cmd)
}

func (r *Registrar) lock() (func(), error) {
	if r.lockPath == "" {
		return func() {}, nil
	}

	fl := flock.New(r.lockPath)
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", r.lockPath, err)
	}

	return func() { _ = fl.Unlock() }, nil
}
