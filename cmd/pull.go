package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/inovacc/autofetch/internal/application"
	"github.com/inovacc/autofetch/internal/database"
	"github.com/inovacc/autofetch/internal/engine"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/inovacc/autofetch/internal/projects"
	"github.com/spf13/cobra"
)

var pullSilent bool

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch all repositories and fast-forward the ones behind",
	Long: `Fetch every tracked repository, then pull the ones whose branch is behind
its upstream and can be fast-forwarded. Pulls never create merge commits.

A repository that cannot be pulled is reported and the batch continues.
Only one pull runs at a time; an overlapping invocation exits immediately.

This is the command the scheduled job runs.

Examples:
  autofetch pull
  autofetch pull --silent`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
	pullCmd.Flags().BoolVarP(&pullSilent, "silent", "s", false, "Only report failures")
}

func runPull(cmd *cobra.Command, _ []string) error {
	return withPullLock(func() error {
		_, err := syncCycle(cmd.Context(), appConfig, pullSilent, cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	})
}

// withPullLock runs fn unless another process holds the pull lock, in which
// case it returns nil without running fn.
func withPullLock(fn func() error) error {
	lockPath, err := application.PullLockPath()
	if err != nil {
		return err
	}

	fl := flock.New(lockPath)

	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", lockPath, err)
	}

	if !locked {
		logger.Info("another pull is already running, skipping")
		return nil
	}

	defer func() { _ = fl.Unlock() }()

	return fn()
}

// syncCycle fetches every repository, pulls the eligible ones and records
// the outcomes in the history store.
func syncCycle(ctx context.Context, cfg model.Config, silent bool, out, errOut io.Writer) (engine.Summary, error) {
	store, err := openHistory()
	if err != nil {
		return engine.Summary{}, err
	}

	defer func() { _ = store.Close() }()

	runID := uuid.NewString()
	e := newEngine(cfg, engine.WithRecorder(store), engine.WithRunID(runID))

	logger.Debug("sync started", slog.String("run_id", runID))

	for _, err := range e.FetchAll(ctx, silent) {
		if err != nil {
			_, _ = fmt.Fprintln(errOut, renderError(err))
			return engine.Summary{}, err
		}
	}

	var outcomes []model.SyncOutcome

	for o, err := range e.PullAll(ctx, silent) {
		if err != nil {
			_, _ = fmt.Fprintln(errOut, renderError(err))
			return engine.Summarize(outcomes), err
		}

		outcomes = append(outcomes, o)

		if o.Failed {
			_, _ = fmt.Fprintln(errOut, renderOutcome(o))
		} else if !silent {
			_, _ = fmt.Fprintln(out, renderOutcome(o))
		}
	}

	summary := engine.Summarize(outcomes)

	if !silent {
		_, _ = fmt.Fprintln(out, renderSummary("Pulled", summary))
	}

	pruneHistory(ctx, cfg, store)

	logger.Debug("sync finished",
		slog.String("run_id", runID),
		slog.Int("pulled", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

func openHistory() (database.Store, error) {
	path, err := application.HistoryPath()
	if err != nil {
		return nil, err
	}

	return database.NewBolt(path)
}

// pruneHistory drops history entries of repositories no longer tracked.
func pruneHistory(ctx context.Context, cfg model.Config, store database.Store) {
	tracked, err := projects.NewLister(cfg, logger).List(ctx)
	if err != nil {
		return
	}

	keep := make(map[model.ProjectDirectory]bool, len(tracked))
	for _, p := range tracked {
		keep[p] = true
	}

	n, err := store.Prune(func(p model.ProjectDirectory) bool { return keep[p] })
	if err != nil {
		logger.Warn("failed to prune history", slog.Any("error", err))
		return
	}

	if n > 0 {
		logger.Debug("pruned history", slog.Int("entries", n))
	}
}
