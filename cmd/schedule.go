package cmd

import (
	"fmt"

	"github.com/inovacc/autofetch/internal/application"
	"github.com/inovacc/autofetch/internal/scheduler"
	"github.com/spf13/cobra"
)

var scheduleMinutes int

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Register 'autofetch pull --silent' as a recurring job",
	Long: `Install a recurring job running 'autofetch pull --silent'.

On Linux, macOS and the BSDs a line is added to the user's crontab unless one
already runs this binary. On Windows a scheduled task named Git-AutoFetch is
created or replaced; the login password is prompted for.

Running the command again leaves a single job in place.

Examples:
  autofetch schedule
  autofetch schedule --minutes 10`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

var unscheduleCmd = &cobra.Command{
	Use:   "unschedule",
	Short: "Remove the recurring job installed by schedule",
	Args:  cobra.NoArgs,
	RunE:  runUnschedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(unscheduleCmd)
	scheduleCmd.Flags().IntVarP(&scheduleMinutes, "minutes", "m", 0, "Interval in minutes, 1-59 (default from config)")
}

func newRegistrar(minutes int) (*scheduler.Registrar, error) {
	lockPath, err := application.ScheduleLockPath()
	if err != nil {
		return nil, err
	}

	return scheduler.New(
		scheduler.WithLogger(logger),
		scheduler.WithLockPath(lockPath),
		scheduler.WithInterval(minutes),
	), nil
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	minutes := appConfig.ScheduleMinutes
	if cmd.Flags().Changed("minutes") {
		minutes = scheduleMinutes
	}

	r, err := newRegistrar(minutes)
	if err != nil {
		return err
	}

	selfCmd, err := r.SelfCommand()
	if err != nil {
		return err
	}

	if err := r.SchedulePull(cmd.Context()); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("✓ Scheduled every %d minutes", minutes)))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(selfCmd))

	return nil
}

func runUnschedule(cmd *cobra.Command, _ []string) error {
	r, err := newRegistrar(appConfig.ScheduleMinutes)
	if err != nil {
		return err
	}

	if err := r.UnschedulePull(cmd.Context()); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓ Scheduled job removed"))

	return nil
}
