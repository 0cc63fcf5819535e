package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/autofetch/internal/config"
	"github.com/inovacc/autofetch/internal/engine"
	"github.com/inovacc/autofetch/internal/git"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/inovacc/autofetch/internal/projects"
	"github.com/spf13/pflag"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// setupLogger creates a configured slog.Logger
func setupLogger(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// newEngine builds the engine over the configured projects, with fetch
// retries applied to the git client.
func newEngine(cfg model.Config, opts ...engine.Option) *engine.Engine {
	runner := git.NewRetryRunner(git.NewClient(), uint(cfg.FetchRetries))
	lister := projects.NewLister(cfg, logger)

	return engine.New(lister, runner, append([]engine.Option{engine.WithLogger(logger)}, opts...)...)
}

// configPath returns the file the configuration is read from and saved to.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}

	return config.DefaultPath()
}

// renderOutcome formats one outcome as a single line.
func renderOutcome(o model.SyncOutcome) string {
	label := fmt.Sprintf("%-6s", o.Operation)

	if o.Failed {
		line := fmt.Sprintf("%s %s %s", errStyle.Render("✗"), label, o.Project)
		if o.Message != "" {
			line += " " + errStyle.Render(o.Message)
		}

		if o.Detail != "" {
			line += "\n    " + dimStyle.Render(firstLine(o.Detail))
		}

		return line
	}

	line := fmt.Sprintf("%s %s %s", okStyle.Render("✓"), label, o.Project)
	if summary := firstLine(o.Output); summary != "" {
		line += " " + dimStyle.Render(summary)
	}

	return line
}

// renderSummary formats the batch totals.
func renderSummary(verb string, s engine.Summary) string {
	text := fmt.Sprintf("%s: %d succeeded, %d failed", verb, s.Succeeded, s.Failed)
	if s.Failed > 0 {
		return warnStyle.Render(text)
	}

	return okStyle.Render(text)
}

// renderError formats a batch-ending error with a remediation hint when one
// is known.
func renderError(err error) string {
	text := errStyle.Render("Error: " + err.Error())
	if hint := git.Hint(err); hint != "" {
		text += "\n" + dimStyle.Render("Hint: "+hint)
	}

	return text
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}

func timeAgo(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// countSet returns how many of the named boolean flags are set.
func countSet(fs *pflag.FlagSet, names ...string) int {
	n := 0

	for _, name := range names {
		if v, err := fs.GetBool(name); err == nil && v {
			n++
		}
	}

	return n
}
