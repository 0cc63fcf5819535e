package engine

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/autofetch/internal/git"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()

	full := append([]string{"-c", "commit.gpgsign=false", "-c", "init.defaultBranch=main"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=autofetch", "GIT_AUTHOR_EMAIL=autofetch@example.com",
		"GIT_COMMITTER_NAME=autofetch", "GIT_COMMITTER_EMAIL=autofetch@example.com",
		"LC_ALL=C",
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v: %s", strings.Join(args, " "), err, out)
	}

	return strings.TrimSpace(string(out))
}

// setupClones creates a bare remote with two clones, and pushes one new
// commit from the second clone so the first one falls behind.
func setupClones(t *testing.T) (behindClone, aheadClone string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	root := t.TempDir()
	seed := filepath.Join(root, "seed")
	remote := filepath.Join(root, "remote.git")
	behindClone = filepath.Join(root, "behind")
	aheadClone = filepath.Join(root, "ahead")

	require.NoError(t, os.MkdirAll(seed, 0o755))
	gitCmd(t, seed, "init")
	require.NoError(t, os.WriteFile(filepath.Join(seed, "README"), []byte("one\n"), 0o644))
	gitCmd(t, seed, "add", "README")
	gitCmd(t, seed, "commit", "-m", "first")

	gitCmd(t, root, "clone", "--bare", seed, remote)
	gitCmd(t, root, "clone", remote, behindClone)
	gitCmd(t, root, "clone", remote, aheadClone)

	require.NoError(t, os.WriteFile(filepath.Join(aheadClone, "README"), []byte("two\n"), 0o644))
	gitCmd(t, aheadClone, "commit", "-am", "second")
	gitCmd(t, aheadClone, "push", "origin", "HEAD")

	return behindClone, aheadClone
}

func TestEngine_FastForwardsBehindClone(t *testing.T) {
	behindClone, aheadClone := setupClones(t)

	source := &MockSource{Projects: []model.ProjectDirectory{
		model.ProjectDirectory(behindClone),
		model.ProjectDirectory(aheadClone),
	}}
	e := New(source, git.NewClient())
	ctx := context.Background()

	fetched, err := Collect(e.FetchAll(ctx, true))
	require.NoError(t, err)
	assert.Len(t, fetched, 2)

	eligible, err := Collect(e.PullEligible(ctx))
	require.NoError(t, err)
	assert.Equal(t, []model.ProjectDirectory{model.ProjectDirectory(behindClone)}, eligible)

	pulled, err := Collect(e.PullAll(ctx, true))
	require.NoError(t, err)
	require.Len(t, pulled, 1)
	assert.False(t, pulled[0].Failed, pulled[0].Detail)

	assert.Equal(t, gitCmd(t, aheadClone, "rev-parse", "HEAD"), gitCmd(t, behindClone, "rev-parse", "HEAD"))

	again, err := Collect(e.PullAll(ctx, true))
	require.NoError(t, err)
	assert.Empty(t, again, "an up to date clone is not eligible")
}
