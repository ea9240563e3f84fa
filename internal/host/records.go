package host

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/Schera-ole/statmerge/internal/errors"
	models "github.com/Schera-ole/statmerge/internal/model"
)

// Swap fields that are point-in-time values; everything else (sin, sout,
// page faults) accumulates since boot.
var swapGauges = map[string]bool{
	"total":   true,
	"used":    true,
	"free":    true,
	"percent": true,
}

// Append queries every metric group of provider and adds the records to snapshot.
// Groups are added in a fixed order: CPU, MEMORY, SWAP, NET.
func Append(ctx context.Context, provider Provider, snapshot *models.Snapshot) error {
	cpuTimes, err := provider.CPUTimes(ctx)
	if err != nil {
		return err
	}
	if err := AppendCPUTimes(snapshot, cpuTimes); err != nil {
		return err
	}

	virtual, err := provider.VirtualMemory(ctx)
	if err != nil {
		return err
	}
	if err := AppendVirtualMemory(snapshot, virtual); err != nil {
		return err
	}

	swap, err := provider.SwapMemory(ctx)
	if err != nil {
		return err
	}
	if err := AppendSwapMemory(snapshot, swap); err != nil {
		return err
	}

	interfaces, err := provider.NetIOCounters(ctx)
	if err != nil {
		return err
	}
	return AppendNetIOCounters(snapshot, interfaces)
}

// AppendCPUTimes adds CPU.time.<field> counters in milliseconds.
func AppendCPUTimes(snapshot *models.Snapshot, fields []Field) error {
	for _, field := range fields {
		value, err := truncate(field.Value, 1000)
		if err != nil {
			return fieldError("cpu times", field, err)
		}
		snapshot.Set("CPU.time."+field.Name, models.Record{
			Description: fmt.Sprintf("cpu.Times(false)['%s'] * 1000", field.Name),
			Flag:        models.FlagCounter,
			Format:      models.FormatInteger,
			Value:       value,
		})
	}
	return nil
}

// AppendVirtualMemory adds MEMORY.<field> gauges.
func AppendVirtualMemory(snapshot *models.Snapshot, fields []Field) error {
	for _, field := range fields {
		value, err := truncate(field.Value, 1)
		if err != nil {
			return fieldError("virtual memory", field, err)
		}
		snapshot.Set("MEMORY."+field.Name, models.Record{
			Description: fmt.Sprintf("mem.VirtualMemory()['%s']", field.Name),
			Flag:        models.FlagGauge,
			Format:      memoryFormat(field.Name),
			Value:       value,
		})
	}
	return nil
}

// AppendSwapMemory adds SWAP.<field> records.
func AppendSwapMemory(snapshot *models.Snapshot, fields []Field) error {
	for _, field := range fields {
		value, err := truncate(field.Value, 1)
		if err != nil {
			return fieldError("swap memory", field, err)
		}
		flag := models.FlagCounter
		if swapGauges[field.Name] {
			flag = models.FlagGauge
		}
		snapshot.Set("SWAP."+field.Name, models.Record{
			Description: fmt.Sprintf("mem.SwapMemory()['%s']", field.Name),
			Flag:        flag,
			Format:      memoryFormat(field.Name),
			Value:       value,
		})
	}
	return nil
}

// AppendNetIOCounters adds NET.<interface>.<field> counters.
func AppendNetIOCounters(snapshot *models.Snapshot, interfaces []Interface) error {
	for _, nic := range interfaces {
		for _, field := range nic.Fields {
			value, err := truncate(field.Value, 1)
			if err != nil {
				return fieldError("network counters", field, err)
			}
			format := models.FormatInteger
			if strings.Contains(field.Name, "bytes") {
				format = models.FormatBytes
			}
			snapshot.Set("NET."+nic.Name+"."+field.Name, models.Record{
				Description: fmt.Sprintf("net.IOCounters(true)['%s']['%s']", nic.Name, field.Name),
				Flag:        models.FlagCounter,
				Format:      format,
				Value:       value,
			})
		}
	}
	return nil
}

func memoryFormat(field string) string {
	if field == "percent" {
		return models.FormatInteger
	}
	return models.FormatBytes
}

func fieldError(group string, field Field, err error) error {
	return fmt.Errorf("%w: %s: field %s: %w", apperrors.ErrProviderFailure, group, field.Name, err)
}

// truncate multiplies value by scale and truncates the result toward zero.
// Integer literals stay exact; anything else goes through float64.
func truncate(value json.Number, scale int64) (json.Number, error) {
	literal := value.String()

	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		if scale == 1 || (i <= math.MaxInt64/scale && i >= math.MinInt64/scale) {
			return json.Number(strconv.FormatInt(i*scale, 10)), nil
		}
	} else if u, err := strconv.ParseUint(literal, 10, 64); err == nil && scale == 1 {
		return json.Number(strconv.FormatUint(u, 10)), nil
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return "", err
	}
	t := math.Trunc(f * float64(scale))
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return "", fmt.Errorf("value %s out of range", literal)
	}
	if t == 0 {
		t = 0 // drops the sign of -0
	}
	return json.Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
}
