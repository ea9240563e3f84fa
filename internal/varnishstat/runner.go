// Package varnishstat runs the varnishstat command and parses its JSON output.
package varnishstat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/Schera-ole/statmerge/internal/errors"
)

// Runner executes the statistics command once per call.
type Runner struct {
	command []string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewRunner creates a Runner for command. A zero timeout means no limit.
func NewRunner(command []string, timeout time.Duration, logger *zap.SugaredLogger) *Runner {
	return &Runner{
		command: command,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes the command and returns its standard output.
func (r *Runner) Run(ctx context.Context) ([]byte, error) {
	if len(r.command) == 0 {
		return nil, fmt.Errorf("%w: no command configured", apperrors.ErrCommandFailed)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...) //nolint:gosec
	killProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debugw("statistics command finished",
		"command", r.command,
		"duration", time.Since(start),
		"stdout_bytes", stdout.Len(),
	)
	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && r.timeout > 0 {
			return nil, fmt.Errorf("%w: timed out after %s", apperrors.ErrCommandFailed, r.timeout)
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCommandFailed, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &apperrors.CommandError{
			Command:  r.command,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}
	return nil, fmt.Errorf("%w: %v", apperrors.ErrCommandFailed, err)
}
