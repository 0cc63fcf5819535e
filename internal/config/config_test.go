package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/autofetch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`projects_dir: /work
repositories:
  - /opt/tool
exclude:
  - archive
schedule_minutes: 10
fetch_retries: 2
log_level: debug
log_format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/work", cfg.ProjectsDir)
	assert.Equal(t, []string{"/opt/tool"}, cfg.Repositories)
	assert.Equal(t, []string{"archive"}, cfg.Exclude)
	assert.Equal(t, 10, cfg.ScheduleMinutes)
	assert.Equal(t, 2, cfg.FetchRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AUTOFETCH_PROJECTS_DIR", "/from/env")
	t.Setenv("AUTOFETCH_SCHEDULE_MINUTES", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.ProjectsDir)
	assert.Equal(t, 5, cfg.ScheduleMinutes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "projects_dir: [unterminated"},
		{"interval too large", "schedule_minutes: 90"},
		{"negative retries", "fetch_retries: -1"},
		{"unknown level", "log_level: loud"},
		{"unknown format", "log_format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := model.DefaultConfig()
	want.ProjectsDir = "/work"
	want.Repositories = []string{"/opt/a", "/opt/b"}
	want.ScheduleMinutes = 15

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.ScheduleMinutes = 0

	assert.Error(t, Save(filepath.Join(t.TempDir(), "config.yaml"), cfg))
}
