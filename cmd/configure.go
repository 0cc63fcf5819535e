package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/inovacc/autofetch/internal/config"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/inovacc/autofetch/internal/projects"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configureProjectsDir string
	configureMinutes     int
	configureRetries     int
	configureAddRepo     []string
	configureRemoveRepo  []string
	configureExclude     []string
	configureShow        bool
	configureReset       bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure autofetch settings",
	Long: `Update the autofetch configuration file.

Examples:
  autofetch configure --projects-dir ~/projects
  autofetch configure --add-repo /opt/tools/dotfiles --exclude archive
  autofetch configure --minutes 10 --retries 2
  autofetch configure --show
  autofetch configure --reset`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().StringVarP(&configureProjectsDir, "projects-dir", "d", "", "Directory whose subdirectories are tracked repositories")
	configureCmd.Flags().IntVarP(&configureMinutes, "minutes", "m", 0, "Interval of the scheduled pull in minutes (1-59)")
	configureCmd.Flags().IntVar(&configureRetries, "retries", 0, "Extra fetch attempts after a transient failure")
	configureCmd.Flags().StringSliceVar(&configureAddRepo, "add-repo", nil, "Track a repository outside the projects directory")
	configureCmd.Flags().StringSliceVar(&configureRemoveRepo, "remove-repo", nil, "Stop tracking an explicitly added repository")
	configureCmd.Flags().StringSliceVar(&configureExclude, "exclude", nil, "Directory names under the projects directory to skip")
	configureCmd.Flags().BoolVarP(&configureShow, "show", "s", false, "Show current configuration")
	configureCmd.Flags().BoolVarP(&configureReset, "reset", "r", false, "Reset configuration to defaults")
	configureCmd.MarkFlagsMutuallyExclusive("show", "reset")
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	path, err := configPath()
	if err != nil {
		return err
	}

	if configureShow {
		return showConfig(out, path, appConfig)
	}

	cfg := appConfig
	if configureReset {
		cfg = model.DefaultConfig()
	}

	flags := cmd.Flags()

	if flags.Changed("projects-dir") {
		dir, err := projects.ExpandPath(configureProjectsDir)
		if err != nil {
			return err
		}

		if err := projects.ValidateProjectsDirectory(dir); err != nil {
			return err
		}

		cfg.ProjectsDir = dir
	}

	if flags.Changed("minutes") {
		cfg.ScheduleMinutes = configureMinutes
	}

	if flags.Changed("retries") {
		cfg.FetchRetries = configureRetries
	}

	for _, repo := range configureAddRepo {
		abs, err := projects.ExpandPath(repo)
		if err != nil {
			return err
		}

		if !projects.IsRepository(abs) {
			return fmt.Errorf("%s is not a git repository", abs)
		}

		if !slices.Contains(cfg.Repositories, abs) {
			cfg.Repositories = append(slices.Clone(cfg.Repositories), abs)
		}
	}

	for _, repo := range configureRemoveRepo {
		abs, err := projects.ExpandPath(repo)
		if err != nil {
			return err
		}

		cfg.Repositories = slices.DeleteFunc(slices.Clone(cfg.Repositories), func(r string) bool { return r == abs })
	}

	for _, name := range configureExclude {
		if !slices.Contains(cfg.Exclude, name) {
			cfg.Exclude = append(slices.Clone(cfg.Exclude), name)
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	appConfig = cfg

	_, _ = fmt.Fprintln(out, okStyle.Render("✓ Configuration saved to "+path))

	return nil
}

func showConfig(w io.Writer, path string, cfg model.Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(w, headerStyle.Render(path))
	_, _ = fmt.Fprint(w, string(data))

	return nil
}
