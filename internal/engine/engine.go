// Package engine decides which tracked repositories can be fast-forwarded and
// pulls them.
//
// Every batch operation returns a lazy iter.Seq2. Repositories are processed
// strictly in the order the ProjectSource lists them, one git invocation at a
// time, and only when the caller asks for the next element. Ranging over the
// same sequence again starts a fresh pass over a fresh listing.
package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/inovacc/autofetch/internal/model"
)

// ProjectSource lists the repositories to operate on.
type ProjectSource interface {
	List(ctx context.Context) ([]model.ProjectDirectory, error)
}

// Runner executes a git subcommand in a repository and returns its output.
type Runner interface {
	Run(ctx context.Context, path, subcommand string, args ...string) (string, error)
}

// Recorder persists outcomes as they are produced.
type Recorder interface {
	Record(outcome model.SyncOutcome) error
}

// Engine orchestrates fetch, status and pull across all repositories.
type Engine struct {
	source   ProjectSource
	runner   Runner
	logger   *slog.Logger
	recorder Recorder
	runID    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress reporting.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder records every produced outcome.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithRunID stamps every outcome with the batch identifier.
func WithRunID(id string) Option {
	return func(e *Engine) {
		e.runID = id
	}
}

// New creates an Engine.
func New(source ProjectSource, runner Runner, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		runner: runner,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// PullFailureMessage is the message carried by a failed pull outcome.
func PullFailureMessage(project model.ProjectDirectory) string {
	return fmt.Sprintf("%s can't be pulled right now.", project)
}

// FetchAll runs `git fetch` in every repository. A failure is yielded as an
// error and ends the sequence.
func (e *Engine) FetchAll(ctx context.Context, silent bool) iter.Seq2[model.SyncOutcome, error] {
	return func(yield func(model.SyncOutcome, error) bool) {
		projects, err := e.list(ctx)
		if err != nil {
			yield(listFailure(model.OperationFetch, err), err)
			return
		}

		for _, p := range projects {
			e.progress(ctx, silent, "Fetching", p)

			o, err := e.run(ctx, p, model.OperationFetch)
			if !yield(o, err) || err != nil {
				return
			}
		}
	}
}

// StatusAll runs `git status` in every repository. A failure is yielded as an
// error and ends the sequence.
func (e *Engine) StatusAll(ctx context.Context) iter.Seq2[model.SyncOutcome, error] {
	return func(yield func(model.SyncOutcome, error) bool) {
		projects, err := e.list(ctx)
		if err != nil {
			yield(listFailure(model.OperationStatus, err), err)
			return
		}

		for _, p := range projects {
			o, err := e.run(ctx, p, model.OperationStatus)
			if !yield(o, err) || err != nil {
				return
			}
		}
	}
}

// PullEligible yields the repositories whose status shows a fast-forwardable
// branch, in listing order. A status failure is yielded as an error and ends
// the sequence.
func (e *Engine) PullEligible(ctx context.Context) iter.Seq2[model.ProjectDirectory, error] {
	return func(yield func(model.ProjectDirectory, error) bool) {
		for o, err := range e.StatusAll(ctx) {
			if err != nil {
				yield(o.Project, err)
				return
			}

			if !IsPullEligible(o.Output) {
				e.logger.Debug("not eligible for pull", slog.String("project", o.Project.String()))
				continue
			}

			if !yield(o.Project, nil) {
				return
			}
		}
	}
}

// PullAll pulls every eligible repository. A pull failure becomes a failed
// outcome for that repository and the sequence continues; a status failure is
// yielded as an error and ends the sequence.
func (e *Engine) PullAll(ctx context.Context, silent bool) iter.Seq2[model.SyncOutcome, error] {
	return func(yield func(model.SyncOutcome, error) bool) {
		for p, err := range e.PullEligible(ctx) {
			if err != nil {
				yield(model.FailedOutcome(p, model.OperationStatus, fmt.Sprintf("status failed for %s", p), err), err)
				return
			}

			e.progress(ctx, silent, "Pulling", p)

			out, err := e.runner.Run(ctx, p.String(), string(model.OperationPull), "--ff-only")

			var o model.SyncOutcome
			if err != nil {
				e.logger.Warn("pull failed", slog.String("project", p.String()), slog.Any("error", err))
				o = model.FailedOutcome(p, model.OperationPull, PullFailureMessage(p), err)
			} else {
				o = model.Succeeded(p, model.OperationPull, out)
			}

			if !yield(e.finish(o), nil) {
				return
			}
		}
	}
}

func listFailure(op model.Operation, err error) model.SyncOutcome {
	return model.SyncOutcome{Operation: op, Failed: true, Message: "cannot list projects", Detail: err.Error()}
}

func (e *Engine) list(ctx context.Context) ([]model.ProjectDirectory, error) {
	projects, err := e.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// run executes op in p. On failure the returned outcome is failure-marked and
// the error is returned alongside it.
func (e *Engine) run(ctx context.Context, p model.ProjectDirectory, op model.Operation) (model.SyncOutcome, error) {
	out, err := e.runner.Run(ctx, p.String(), string(op))
	if err != nil {
		o := e.finish(model.FailedOutcome(p, op, fmt.Sprintf("%s failed for %s", op, p), err))
		return o, fmt.Errorf("%s %s: %w", op, p, err)
	}

	return e.finish(model.Succeeded(p, op, out)), nil
}

func (e *Engine) finish(o model.SyncOutcome) model.SyncOutcome {
	o.RunID = e.runID

	if e.recorder != nil {
		if err := e.recorder.Record(o); err != nil {
			e.logger.Warn("failed to record outcome",
				slog.String("project", o.Project.String()),
				slog.Any("error", err),
			)
		}
	}

	return o
}

func (e *Engine) progress(ctx context.Context, silent bool, verb string, p model.ProjectDirectory) {
	level := slog.LevelInfo
	if silent {
		level = slog.LevelDebug
	}

	e.logger.Log(ctx, level, fmt.Sprintf("%s %s", verb, p))
}
