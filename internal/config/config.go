package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	apperrors "github.com/Schera-ole/statmerge/internal/errors"
)

// Config holds the settings of a single statmerge run.
type Config struct {
	Command  []string
	Timeout  time.Duration
	Output   string
	LogLevel zapcore.Level
}

// NewConfig parses command-line flags and applies environment overrides.
// Environment variables take precedence over flags.
func NewConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("statmerge", flag.ContinueOnError)

	command := fs.String("c", DefaultCommand, "statistics command to run")
	timeout := fs.String("t", "0", "statistics command timeout, 0 disables it")
	output := fs.String("o", DefaultOutput, "output format: json or prometheus")
	logLevel := fs.String("l", DefaultLogLevel, "log level for diagnostics on stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", apperrors.ErrInvalidConfig, fs.Args())
	}

	envVars := map[string]*string{
		"STATMERGE_COMMAND":   command,
		"STATMERGE_TIMEOUT":   timeout,
		"STATMERGE_OUTPUT":    output,
		"STATMERGE_LOG_LEVEL": logLevel,
	}

	for envVar, flag := range envVars {
		if envValue := os.Getenv(envVar); envValue != "" {
			*flag = envValue
		}
	}

	config := &Config{
		Command: strings.Fields(*command),
		Output:  strings.ToLower(strings.TrimSpace(*output)),
	}
	if len(config.Command) == 0 {
		return nil, fmt.Errorf("%w: empty statistics command", apperrors.ErrInvalidConfig)
	}

	parsedTimeout, err := time.ParseDuration(*timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timeout %q: %v", apperrors.ErrInvalidConfig, *timeout, err)
	}
	if parsedTimeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout %s", apperrors.ErrInvalidConfig, parsedTimeout)
	}
	config.Timeout = parsedTimeout

	level, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	config.LogLevel = level

	return config, nil
}
