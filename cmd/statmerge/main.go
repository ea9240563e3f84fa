package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Schera-ole/statmerge/internal/config"
	"github.com/Schera-ole/statmerge/internal/host"
	"github.com/Schera-ole/statmerge/internal/output"
	"github.com/Schera-ole/statmerge/internal/service"
	"github.com/Schera-ole/statmerge/internal/varnishstat"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.NewConfig(args)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	encoder, err := output.New(cfg.Output, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mergeService := service.NewMergeService(
		varnishstat.NewRunner(cfg.Command, cfg.Timeout, logger),
		host.NewGopsutilProvider(),
		logger,
	)

	snapshot, err := mergeService.Collect(ctx)
	if err != nil {
		return err
	}
	logger.Infow("snapshot collected", "metrics", snapshot.Len(), "output", cfg.Output)

	return encoder.Encode(stdout, snapshot)
}
