// Package host reads host resource metrics and turns them into varnishstat-shaped records.
package host

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/iancoleman/strcase"

	models "github.com/Schera-ole/statmerge/internal/model"
)

// Field is one named numeric value reported by the OS.
type Field struct {
	Name  string
	Value json.Number
}

// Interface holds the I/O counters of a single network interface.
type Interface struct {
	Name   string
	Fields []Field
}

// Provider is the source of host metrics. Field sets are platform dependent
// and are returned in the order the OS reports them.
type Provider interface {
	CPUTimes(ctx context.Context) ([]Field, error)
	VirtualMemory(ctx context.Context) ([]Field, error)
	SwapMemory(ctx context.Context) ([]Field, error)
	NetIOCounters(ctx context.Context) ([]Interface, error)
}

var fieldAliases = map[string]string{
	"used_percent": "percent",
}

// fieldsOf enumerates the numeric fields of a stats struct through its JSON form.
// String fields such as the CPU or interface name are skipped.
func fieldsOf(stat any) ([]Field, error) {
	data, err := json.Marshal(stat)
	if err != nil {
		return nil, err
	}
	members, err := models.DecodeObject(data)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, members.Len())
	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		raw := bytes.TrimSpace(pair.Value)
		if !models.IsNumber(raw) {
			continue
		}
		fields = append(fields, Field{
			Name:  fieldName(pair.Key),
			Value: json.Number(raw),
		})
	}
	return fields, nil
}

// fieldName converts gopsutil's camelCase names to snake_case, so that
// "bytesSent" becomes "bytes_sent" and "usedPercent" becomes "percent".
func fieldName(name string) string {
	snake := strcase.ToSnake(name)
	if alias, ok := fieldAliases[snake]; ok {
		return alias
	}
	return snake
}
