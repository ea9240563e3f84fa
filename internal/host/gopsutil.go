package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"

	apperrors "github.com/Schera-ole/statmerge/internal/errors"
)

var errNoCPUTimes = errors.New("no aggregate cpu times reported")

// GopsutilProvider reads host metrics through gopsutil.
type GopsutilProvider struct{}

// NewGopsutilProvider returns a Provider backed by gopsutil.
func NewGopsutilProvider() *GopsutilProvider {
	return &GopsutilProvider{}
}

// CPUTimes returns the aggregate CPU time breakdown in seconds.
func (p *GopsutilProvider) CPUTimes(ctx context.Context) ([]Field, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%w: cpu times: %w", apperrors.ErrProviderFailure, err)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: cpu times: %w", apperrors.ErrProviderFailure, errNoCPUTimes)
	}
	return p.fields("cpu times", times[0])
}

// VirtualMemory returns the virtual memory statistics.
func (p *GopsutilProvider) VirtualMemory(ctx context.Context) ([]Field, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: virtual memory: %w", apperrors.ErrProviderFailure, err)
	}
	return p.fields("virtual memory", vm)
}

// SwapMemory returns the swap statistics.
func (p *GopsutilProvider) SwapMemory(ctx context.Context) ([]Field, error) {
	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: swap memory: %w", apperrors.ErrProviderFailure, err)
	}
	return p.fields("swap memory", swap)
}

// NetIOCounters returns the I/O counters of every network interface.
func (p *GopsutilProvider) NetIOCounters(ctx context.Context) ([]Interface, error) {
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%w: network counters: %w", apperrors.ErrProviderFailure, err)
	}

	interfaces := make([]Interface, 0, len(counters))
	for _, nic := range counters {
		fields, err := p.fields("network counters", nic)
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, Interface{Name: nic.Name, Fields: fields})
	}
	return interfaces, nil
}

func (p *GopsutilProvider) fields(group string, stat any) ([]Field, error) {
	fields, err := fieldsOf(stat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrProviderFailure, group, err)
	}
	return fields, nil
}
