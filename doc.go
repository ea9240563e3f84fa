// Package statmerge collects Varnish statistics together with host resource metrics.
//
// The statmerge command runs 'varnishstat -1 -j' once, drops the lock and
// memory pool counters, and appends host metrics in the same record shape:
//   - CPU.time.<field>: aggregate CPU time in milliseconds (counters)
//   - MEMORY.<field>: virtual memory statistics (gauges)
//   - SWAP.<field>: swap statistics (gauges, sin/sout counters)
//   - NET.<interface>.<field>: per-interface network I/O counters
//
// The merged snapshot is written to standard output as a single JSON object,
// or in the Prometheus text format when run with -o prometheus. The command is
// meant to be run periodically by cron or a metrics agent; every run is
// independent and any failure exits non-zero without writing output.
//
// Configuration is available via command-line flags and environment variables.
package statmerge
