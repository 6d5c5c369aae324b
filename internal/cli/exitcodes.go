package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdshortcut/internal/configloader"
	"github.com/yaklabco/mdshortcut/pkg/replay"
)

// Exit codes for mdshortcut.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a replay or command failure.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage or a bad script.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrReplayFailed is returned when a keystroke script could not be typed
	// to completion.
	ErrReplayFailed = errors.New("replay failed")

	// ErrInvalidUsage is returned for flag and argument combinations that
	// cannot be satisfied.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, replay.ErrBadToken):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, ErrReplayFailed):
		return ExitFailure
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
