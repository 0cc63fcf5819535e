package cmd

import (
	"fmt"

	"github.com/inovacc/autofetch/internal/engine"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which repositories can be fast-forwarded",
	Long: `Run git status in every tracked repository and report whether its branch
is behind its upstream and can be fast-forwarded.

Status reflects the last fetch; run 'autofetch fetch' first for fresh results.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	e := newEngine(appConfig)

	eligible := 0

	for o, err := range e.StatusAll(cmd.Context()) {
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), renderError(err))
			return err
		}

		state := dimStyle.Render("nothing to pull")
		if engine.IsPullEligible(o.Output) {
			state = warnStyle.Render("behind, can fast-forward")
			eligible++
		}

		_, _ = fmt.Fprintf(out, "%s  %s\n", o.Project, state)
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d repositories can be pulled", eligible)))

	return nil
}
