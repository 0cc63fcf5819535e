package cmd

import (
	"fmt"

	"github.com/inovacc/autofetch/internal/giturl"
	"github.com/inovacc/autofetch/internal/projects"
	"github.com/spf13/cobra"
)

var listURLs bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked repositories",
	Long: `List the repositories autofetch operates on, in processing order, with
the checked-out branch and its upstream.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listURLs, "urls", false, "Show full remote URLs (credentials masked)")
}

func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	tracked, err := projects.NewLister(appConfig, logger).List(cmd.Context())
	if err != nil {
		return err
	}

	if len(tracked) == 0 {
		_, _ = fmt.Fprintln(out, "No repositories found.")
		_, _ = fmt.Fprintln(out, "Set one with: autofetch configure --projects-dir <dir>")

		return nil
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d repositories", len(tracked))))

	for _, p := range tracked {
		info, err := projects.Inspect(p.String())
		if err != nil {
			_, _ = fmt.Fprintf(out, "%s  %s\n", p, errStyle.Render(err.Error()))
			continue
		}

		branch := info.Branch
		if branch == "" {
			branch = "(detached)"
		}

		upstream := dimStyle.Render("no upstream")
		if u := info.Upstream(); u != "" {
			upstream = dimStyle.Render("→ " + u)
		}

		line := fmt.Sprintf("%s  %s %s", p, okStyle.Render(branch), upstream)
		remote := giturl.Describe(info.RemoteURL)
		if listURLs {
			remote = giturl.Redact(info.RemoteURL)
		}

		if remote != "" {
			line += " " + dimStyle.Render("("+remote+")")
		}

		_, _ = fmt.Fprintln(out, line)
	}

	return nil
}
