// Package config loads and saves the autofetch configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/inovacc/autofetch/internal/application"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. AUTOFETCH_PROJECTS_DIR.
const EnvPrefix = "AUTOFETCH"

// DefaultPath returns the configuration file in the application directory.
func DefaultPath() (string, error) {
	return application.ConfigPath()
}

// Load reads configuration from path. If path is empty, uses DefaultPath. A
// missing file yields the defaults.
func Load(path string) (model.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return model.Config{}, err
		}

		path = defaultPath
	}

	cfg := model.DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("projects_dir", cfg.ProjectsDir)
	v.SetDefault("schedule_minutes", cfg.ScheduleMinutes)
	v.SetDefault("fetch_retries", cfg.FetchRetries)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return model.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return model.Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return model.Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func Validate(cfg model.Config) error {
	if cfg.ScheduleMinutes < 1 || cfg.ScheduleMinutes > 59 {
		return fmt.Errorf("schedule_minutes must be between 1 and 59, got %d", cfg.ScheduleMinutes)
	}

	if cfg.FetchRetries < 0 || cfg.FetchRetries > 10 {
		return fmt.Errorf("fetch_retries must be between 0 and 10, got %d", cfg.FetchRetries)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log_format %q", cfg.LogFormat)
	}

	return nil
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(path string, cfg model.Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
