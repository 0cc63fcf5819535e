package projects

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackingConfig = `[core]
	repositoryformatversion = 0
	bare = false
[remote "origin"]
	url = https://github.com/example/app.git
	fetch = +refs/heads/*:refs/remotes/origin/*
[branch "main"]
	remote = origin
	merge = refs/heads/main
`

func writeGitDir(t *testing.T, head, config string) string {
	t.Helper()

	repo := t.TempDir()
	gitDir := filepath.Join(repo, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte(head), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "config"), []byte(config), 0o644))

	return repo
}

func TestInspect_TrackingBranch(t *testing.T) {
	repo := writeGitDir(t, "ref: refs/heads/main\n", trackingConfig)

	info, err := Inspect(repo)
	require.NoError(t, err)

	assert.Equal(t, "main", info.Branch)
	assert.Equal(t, "origin", info.Remote)
	assert.Equal(t, "https://github.com/example/app.git", info.RemoteURL)
	assert.Equal(t, "origin/main", info.Upstream())
}

func TestInspect_NoUpstream(t *testing.T) {
	repo := writeGitDir(t, "ref: refs/heads/feature\n", trackingConfig)

	info, err := Inspect(repo)
	require.NoError(t, err)

	assert.Equal(t, "feature", info.Branch)
	assert.Empty(t, info.Upstream())
}

func TestInspect_DetachedHead(t *testing.T) {
	repo := writeGitDir(t, "1a2b3c4d5e6f\n", trackingConfig)

	info, err := Inspect(repo)
	require.NoError(t, err)
	assert.Empty(t, info.Branch)
}

func TestInspect_Worktree(t *testing.T) {
	main := writeGitDir(t, "ref: refs/heads/main\n", trackingConfig)

	wtGitDir := filepath.Join(main, ".git", "worktrees", "wt")
	require.NoError(t, os.MkdirAll(wtGitDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wtGitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(wtGitDir, "commondir"), []byte("../..\n"), 0o644))

	wt := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(wt, ".git"), []byte("gitdir: "+wtGitDir+"\n"), 0o644))

	info, err := Inspect(wt)
	require.NoError(t, err)
	assert.Equal(t, "origin/main", info.Upstream())
}

func TestInspect_NotRepository(t *testing.T) {
	_, err := Inspect(t.TempDir())
	assert.Error(t, err)
}
