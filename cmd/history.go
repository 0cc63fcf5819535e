package cmd

import (
	"fmt"

	"github.com/inovacc/autofetch/internal/model"
	"github.com/inovacc/autofetch/internal/projects"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [repository]",
	Short: "Show the last recorded outcome per repository",
	Long: `Show the most recent fetch, status and pull outcome recorded for every
repository, or for a single repository when a path is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := openHistory()
	if err != nil {
		return err
	}

	defer func() { _ = store.Close() }()

	var outcomes []model.SyncOutcome

	if len(args) == 1 {
		path, err := projects.ExpandPath(args[0])
		if err != nil {
			return err
		}

		outcomes, err = store.Last(model.ProjectDirectory(path))
		if err != nil {
			return err
		}
	} else {
		outcomes, err = store.List()
		if err != nil {
			return err
		}
	}

	if len(outcomes) == 0 {
		_, _ = fmt.Fprintln(out, "No history recorded yet.")
		return nil
	}

	for _, o := range outcomes {
		_, _ = fmt.Fprintf(out, "%s %s\n", dimStyle.Render(fmt.Sprintf("%-9s", timeAgo(o.At))), renderOutcome(o))
	}

	return nil
}
