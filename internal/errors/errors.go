package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Collection errors
	ErrCommandFailed   = errors.New("statistics command failed")
	ErrMalformedOutput = errors.New("malformed statistics output")
	ErrProviderFailure = errors.New("host metrics provider failed")

	// Setup errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownOutput = errors.New("unknown output format")
)

// CommandError is returned when the statistics command exits with a non-zero status.
type CommandError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command '%s' failed with exit code %d", strings.Join(e.Command, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}
