// Package projects discovers the repositories autofetch keeps up to date.
package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/inovacc/autofetch/internal/model"
)

// ErrNotConfigured is returned when neither a projects directory nor explicit
// repositories are configured.
var ErrNotConfigured = errors.New("no projects directory or repositories configured")

// Lister lists the immediate subdirectories of the projects directory that
// are git repositories, followed by the explicitly configured repositories.
type Lister struct {
	projectsDir  string
	repositories []string
	exclude      []string
	logger       *slog.Logger
}

// NewLister creates a Lister from the configuration.
func NewLister(cfg model.Config, logger *slog.Logger) *Lister {
	if logger == nil {
		logger = slog.Default()
	}

	return &Lister{
		projectsDir:  cfg.ProjectsDir,
		repositories: cfg.Repositories,
		exclude:      cfg.Exclude,
		logger:       logger,
	}
}

// List implements engine.ProjectSource. Directory entries come in name order;
// a path listed twice is returned once.
func (l *Lister) List(ctx context.Context) ([]model.ProjectDirectory, error) {
	if l.projectsDir == "" && len(l.repositories) == 0 {
		return nil, ErrNotConfigured
	}

	var (
		out  []model.ProjectDirectory
		seen = make(map[string]bool)
	)

	add := func(path string) {
		if seen[path] {
			return
		}

		seen[path] = true
		out = append(out, model.ProjectDirectory(path))
	}

	if l.projectsDir != "" {
		dir, err := ExpandPath(l.projectsDir)
		if err != nil {
			return nil, err
		}

		if err := ValidateProjectsDirectory(dir); err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read projects directory: %w", err)
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || slices.Contains(l.exclude, entry.Name()) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if !IsRepository(path) {
				l.logger.Debug("skipping non-repository directory", slog.String("path", path))
				continue
			}

			add(path)
		}
	}

	for _, repo := range l.repositories {
		path, err := ExpandPath(repo)
		if err != nil {
			return nil, err
		}

		if !IsRepository(path) {
			l.logger.Warn("configured repository is not a git working copy", slog.String("path", path))
			continue
		}

		add(path)
	}

	return out, nil
}

// IsRepository reports whether path is the root of a git working copy,
// including linked worktrees whose .git is a file.
func IsRepository(path string) bool {
	_, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})

	return err == nil
}

// ValidateProjectsDirectory checks that dir exists and is a directory.
func ValidateProjectsDirectory(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("projects directory %s: %w", dir, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("projects directory %s is not a directory", dir)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory and returns an absolute path
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}
