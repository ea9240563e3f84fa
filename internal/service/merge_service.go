// Package service provides the collection pipeline of statmerge.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Schera-ole/statmerge/internal/host"
	models "github.com/Schera-ole/statmerge/internal/model"
	"github.com/Schera-ole/statmerge/internal/varnishstat"
)

// blacklist holds the varnishstat prefixes that are never exported.
var blacklist = []string{"LCK.", "MEMPOOL."}

// Source produces raw 'varnishstat -1 -j' output.
type Source interface {
	Run(ctx context.Context) ([]byte, error)
}

// MergeService builds a snapshot out of varnishstat and host metrics.
type MergeService struct {
	source   Source
	provider host.Provider
	logger   *zap.SugaredLogger
}

// NewMergeService creates a MergeService reading from source and provider.
func NewMergeService(source Source, provider host.Provider, logger *zap.SugaredLogger) *MergeService {

	return &MergeService{
		source:   source,
		provider: provider,
		logger:   logger,
	}
}

// Collect runs the statistics command, drops blacklisted metrics and appends
// host metrics. Any failure aborts the whole collection.
func (ms *MergeService) Collect(ctx context.Context) (*models.Snapshot, error) {

	out, err := ms.source.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching varnishstat output: %w", err)
	}

	snapshot, err := varnishstat.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("error parsing varnishstat output: %w", err)
	}
	parsed := snapshot.Len()

	removed := snapshot.DeleteFunc(IsBlacklisted)
	ms.logger.Debugw("varnishstat metrics parsed",
		"parsed", parsed,
		"blacklisted", removed,
	)

	if err := host.Append(ctx, ms.provider, snapshot); err != nil {
		return nil, fmt.Errorf("error collecting host metrics: %w", err)
	}
	ms.logger.Debugw("host metrics appended",
		"host", snapshot.Len()-(parsed-removed),
		"total", snapshot.Len(),
	)

	return snapshot, nil
}

// IsBlacklisted reports whether a varnishstat metric name must be dropped.
func IsBlacklisted(name string) bool {
	for _, prefix := range blacklist {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
