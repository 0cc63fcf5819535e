package projects

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Info describes the branch a working copy has checked out and the upstream
// it tracks, read from .git/HEAD and .git/config.
type Info struct {
	Path      string
	Branch    string
	Remote    string
	RemoteURL string
	Merge     string
}

// Upstream returns the tracked ref in "remote/branch" form, or "".
func (i Info) Upstream() string {
	if i.Remote == "" || i.Merge == "" {
		return ""
	}

	return i.Remote + "/" + strings.TrimPrefix(i.Merge, "refs/heads/")
}

// Inspect reads the checked out branch and its upstream configuration.
// Detached heads and branches without upstream yield empty fields, not errors.
func Inspect(path string) (Info, error) {
	info := Info{Path: path}

	gitDir := filepath.Join(path, ".git")

	fi, err := os.Stat(gitDir)
	if err != nil {
		return info, fmt.Errorf("not a git repo: %s", path)
	}

	if !fi.IsDir() {
		// linked worktree or submodule: ".git" holds "gitdir: <path>"
		gitDir, err = resolveGitFile(path, gitDir)
		if err != nil {
			return info, err
		}
	}

	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return info, fmt.Errorf("failed to read HEAD: %w", err)
	}

	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: refs/heads/") {
		return info, nil
	}

	info.Branch = strings.TrimPrefix(ref, "ref: refs/heads/")

	cfg, err := ini.Load(filepath.Join(configDir(gitDir), "config"))
	if err != nil {
		return info, fmt.Errorf("failed to read git config: %w", err)
	}

	if sec, err := cfg.GetSection(fmt.Sprintf(`branch "%s"`, info.Branch)); err == nil {
		info.Remote = sec.Key("remote").String()
		info.Merge = sec.Key("merge").String()
	}

	if info.Remote != "" {
		if sec, err := cfg.GetSection(fmt.Sprintf(`remote "%s"`, info.Remote)); err == nil {
			info.RemoteURL = sec.Key("url").String()
		}
	}

	return info, nil
}

func resolveGitFile(path, gitFile string) (string, error) {
	data, err := os.ReadFile(gitFile)
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "gitdir:") {
		return "", fmt.Errorf("malformed .git file in %s", path)
	}

	dir := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(path, dir)
	}

	return dir, nil
}

// configDir returns the directory holding the shared config of a worktree
// git dir, or gitDir itself.
func configDir(gitDir string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir
	}

	common := strings.TrimSpace(string(data))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}

	return common
}
