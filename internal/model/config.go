package model

import (
	"os"
	"path/filepath"
)

const (
	// DefaultScheduleMinutes is the interval of the self-registered pull job
	DefaultScheduleMinutes = 2
)

// Config holds the application configuration
type Config struct {
	// ProjectsDir is the directory whose immediate children are tracked repositories
	ProjectsDir string `mapstructure:"projects_dir" yaml:"projects_dir"`

	// Repositories lists extra repository paths outside ProjectsDir
	Repositories []string `mapstructure:"repositories" yaml:"repositories,omitempty"`

	// Exclude lists directory names under ProjectsDir to ignore
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`

	// ScheduleMinutes is the interval in minutes of the scheduled pull
	ScheduleMinutes int `mapstructure:"schedule_minutes" yaml:"schedule_minutes"`

	// FetchRetries is the number of extra fetch attempts after a failure
	FetchRetries int `mapstructure:"fetch_retries" yaml:"fetch_retries"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogFormat is text or json
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return Config{
		ProjectsDir:     filepath.Join(homeDir, "projects"),
		ScheduleMinutes: DefaultScheduleMinutes,
		FetchRetries:    0,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}
