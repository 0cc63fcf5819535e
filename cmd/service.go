package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inovacc/autofetch/internal/application"
	"github.com/inovacc/autofetch/internal/daemon"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

var serviceOps = []string{"install", "uninstall", "start", "stop", "status", "run"}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Run autofetch as a system service",
	Long: `Install, uninstall, start, stop, or check the status of the autofetch service.

The service fetches and pulls every tracked repository every schedule_minutes
minutes. It is an alternative to 'autofetch schedule'; use one or the other.

On Windows, this creates/manages a Windows Service.
On Linux/macOS, this creates/manages a systemd/launchd service.`,
	Args: cobra.NoArgs,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.Flags().Bool("install", false, "Install autofetch as a system service")
	serviceCmd.Flags().Bool("uninstall", false, "Uninstall the autofetch system service")
	serviceCmd.Flags().Bool("start", false, "Start the autofetch service")
	serviceCmd.Flags().Bool("stop", false, "Stop the autofetch service")
	serviceCmd.Flags().Bool("status", false, "Check the autofetch service status")
	serviceCmd.Flags().Bool("run", false, "Run the sync loop in the foreground (used by the service manager)")
}

// selectedOp returns the single service operation requested by flags.
func selectedOp(cmd *cobra.Command) (string, error) {
	switch n := countSet(cmd.Flags(), serviceOps...); {
	case n == 0:
		return "", errors.New("please specify one of: --install, --uninstall, --start, --stop, --status, --run")
	case n > 1:
		return "", errors.New("please specify only one operation at a time")
	}

	for _, op := range serviceOps {
		if v, _ := cmd.Flags().GetBool(op); v {
			return op, nil
		}
	}

	return "", nil
}

func runService(cmd *cobra.Command, _ []string) error {
	op, err := selectedOp(cmd)
	if err != nil {
		return err
	}

	arguments := []string{"service", "--run"}
	if cfgFile != "" {
		arguments = append(arguments, "--config", cfgFile)
	}

	interval := time.Duration(appConfig.ScheduleMinutes) * time.Minute
	prg := daemon.NewProgram(interval, func(ctx context.Context) error {
		return withPullLock(func() error {
			_, err := syncCycle(ctx, appConfig, true, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		})
	}, logger)

	s, err := service.New(prg, daemon.Config(arguments))
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	out := cmd.OutOrStdout()

	switch op {
	case "install":
		if err := s.Install(); err != nil {
			return fmt.Errorf("failed to install service: %w", err)
		}

		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Service installed successfully!"))
		_, _ = fmt.Fprintln(out, "\nTo start the service, run:")
		_, _ = fmt.Fprintf(out, "  %s service --start\n", application.AppName)
	case "uninstall":
		_ = s.Stop()

		if err := s.Uninstall(); err != nil {
			return fmt.Errorf("failed to uninstall service: %w", err)
		}

		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Service uninstalled successfully!"))
	case "start":
		if err := s.Start(); err != nil {
			return fmt.Errorf("failed to start service: %w", err)
		}

		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Service started successfully!"))
	case "stop":
		if err := s.Stop(); err != nil {
			return fmt.Errorf("failed to stop service: %w", err)
		}

		_, _ = fmt.Fprintln(out, okStyle.Render("✓ Service stopped successfully!"))
	case "status":
		status, err := s.Status()
		if err != nil {
			return fmt.Errorf("failed to get service status: %w", err)
		}

		_, _ = fmt.Fprintf(out, "Service Status: %s\n", statusText(status))
	case "run":
		logger.Info("service loop started", "interval", interval)
		return s.Run()
	}

	return nil
}

func statusText(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return okStyle.Render("Running ✓")
	case service.StatusStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
