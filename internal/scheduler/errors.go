package scheduler

import (
	"fmt"
	"strings"
)

// UnsupportedPlatformError is returned when the host OS has no known
// periodic job mechanism.
type UnsupportedPlatformError struct {
	OS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("scheduling is not supported on %s", e.OS)
}

// CommandError is a failed native scheduler command. Only the program and
// its first argument are reported so credentials never reach logs.
type CommandError struct {
	Name       string
	Subcommand string
	Stderr     string
	Err        error
}

func (e *CommandError) Error() string {
	cmd := strings.TrimSpace(e.Name + " " + e.Subcommand)

	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return fmt.Sprintf("%s failed: %s", cmd, msg)
	}

	return fmt.Sprintf("%s failed: %v", cmd, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
