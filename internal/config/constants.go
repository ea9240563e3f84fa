// Package config provides configuration for the statmerge command.
package config

const (
	// DefaultCommand runs varnishstat once and asks for JSON output.
	DefaultCommand = "/usr/bin/varnishstat -1 -j"

	// DefaultOutput is the output format written to standard output.
	DefaultOutput = "json"

	// DefaultLogLevel keeps stderr quiet when run from cron.
	DefaultLogLevel = "warn"
)
