package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfCommand(t *testing.T) {
	tests := []struct {
		name string
		exe  string
		want string
	}{
		{"unix path", "/usr/local/bin/autofetch", "/usr/local/bin/autofetch pull --silent"},
		{"windows path", `C:\tools\autofetch.exe`, "C:/tools/autofetch.exe pull --silent"},
		{"path with spaces", `C:\Program Files\autofetch.exe`, `"C:/Program Files/autofetch.exe" pull --silent`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelfCommand(tt.exe))
		})
	}
}

func TestPathsLiveInApplicationDirectory(t *testing.T) {
	dir, err := GetApplicationDirectory()
	require.NoError(t, err)

	for _, fn := range []func() (string, error){ConfigPath, HistoryPath, PullLockPath, ScheduleLockPath} {
		p, err := fn()
		require.NoError(t, err)
		assert.Equal(t, dir, filepath.Dir(p))
	}
}
