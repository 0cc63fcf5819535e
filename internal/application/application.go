package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "autofetch"

	// TaskName is the fixed name of the Windows scheduled task
	TaskName = "Git-AutoFetch"

	// ServiceName is the name registered with the native service manager
	ServiceName = "AutoFetch"

	configFileName = "config.yaml"
	historyDBName  = "autofetch.bolt"
	pullLockName   = "pull.lock"
	scheduleLock   = "schedule.lock"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the autofetch configuration directory path.
// Linux: ~/.config/autofetch (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\autofetch (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)

	if err := os.MkdirAll(appDir, 0o755); err != nil {
		errDir = fmt.Errorf("failed to create %s: %w", appDir, err)
	}
}

// ConfigPath returns the default configuration file location.
func ConfigPath() (string, error) {
	return inAppDir(configFileName)
}

// HistoryPath returns the location of the sync history database.
func HistoryPath() (string, error) {
	return inAppDir(historyDBName)
}

// PullLockPath returns the lock file guarding overlapping pull runs.
func PullLockPath() (string, error) {
	return inAppDir(pullLockName)
}

// ScheduleLockPath returns the lock file guarding scheduler registration.
func ScheduleLockPath() (string, error) {
	return inAppDir(scheduleLock)
}

func inAppDir(name string) (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}

// SelfCommand returns the command line the scheduled job runs: the batch
// pull of this executable. Backslashes are normalized to forward slashes so
// the generated text is the same shape on every host.
func SelfCommand(executable string) string {
	exe := strings.ReplaceAll(executable, `\`, "/")
	if strings.ContainsAny(exe, " \t") {
		exe = `"` + exe + `"`
	}

	return exe + " pull --silent"
}
