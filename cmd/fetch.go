package cmd

import (
	"fmt"

	"github.com/inovacc/autofetch/internal/engine"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/spf13/cobra"
)

var fetchSilent bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch every tracked repository",
	Long: `Run git fetch in every tracked repository, in listing order.

The batch stops at the first repository that cannot be fetched.

Examples:
  autofetch fetch
  autofetch fetch --silent`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().BoolVarP(&fetchSilent, "silent", "s", false, "Only report failures")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	e := newEngine(appConfig)

	var outcomes []model.SyncOutcome

	for o, err := range e.FetchAll(cmd.Context(), fetchSilent) {
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), renderError(err))
			return err
		}

		outcomes = append(outcomes, o)

		if !fetchSilent {
			_, _ = fmt.Fprintln(out, renderOutcome(o))
		}
	}

	if !fetchSilent {
		_, _ = fmt.Fprintln(out, renderSummary("Fetched", engine.Summarize(outcomes)))
	}

	return nil
}
