// Package models defines the data structures used throughout statmerge.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Flags used by varnishstat to classify a metric.
const (
	FlagCounter = "c"
	FlagGauge   = "g"
	FlagBitmap  = "b"
)

// Formats used by varnishstat as unit hints.
const (
	FormatInteger = "i"
	FormatBytes   = "B"
)

var (
	errNotObject = errors.New("expected a JSON object")
	errNotNumber = errors.New("value is not a number")
)

// recordFields lists the keys every record must carry.
var recordFields = []string{"description", "flag", "format", "value"}

// Record is a single metric in varnishstat's output shape.
type Record struct {
	// Description explains where the value comes from
	Description string `json:"description"`

	// Flag is "c" for counters and "g" for gauges ("b" for bitmaps)
	Flag string `json:"flag"`

	// Format is the unit hint: "i" integer, "B" bytes, "d" duration, ...
	Format string `json:"format"`

	// Value is kept as the literal JSON number so external values round-trip unchanged
	Value json.Number `json:"value"`
}

// IsCounter reports whether the record is a monotonically increasing counter.
func (r Record) IsCounter() bool {
	return r.Flag == FlagCounter
}

// IsBitmap reports whether the record is a varnishstat bitmap.
func (r Record) IsBitmap() bool {
	return r.Flag == FlagBitmap
}

// DecodeRecord decodes a record, requiring all four fields: string
// description, flag and format, and a numeric value.
func DecodeRecord(raw json.RawMessage) (Record, error) {
	fields, err := DecodeObject(raw)
	if err != nil {
		return Record{}, err
	}
	for _, key := range recordFields {
		value, ok := fields.Get(key)
		if !ok {
			return Record{}, fmt.Errorf("missing %s field", key)
		}
		value = bytes.TrimSpace(value)
		if key == "value" {
			if !IsNumber(value) {
				return Record{}, fmt.Errorf("%w: %s", errNotNumber, value)
			}
		} else if len(value) == 0 || value[0] != '"' {
			return Record{}, fmt.Errorf("%s field is not a string", key)
		}
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// DecodeObject decodes a JSON object into its raw members, keeping document order.
func DecodeObject(data []byte) (*orderedmap.OrderedMap[string, json.RawMessage], error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, errors.New("invalid JSON")
	}
	if trimmed[0] != '{' {
		return nil, errNotObject
	}
	object := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, object); err != nil {
		return nil, err
	}
	return object, nil
}

// IsNumber reports whether raw is a JSON number literal.
func IsNumber(raw []byte) bool {
	return len(raw) > 0 && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'))
}

// Snapshot maps dotted metric names to records, remembering insertion order.
type Snapshot struct {
	records *orderedmap.OrderedMap[string, Record]
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		records: orderedmap.New[string, Record](),
	}
}

// Set stores a record. An existing key is overwritten in place.
func (s *Snapshot) Set(name string, record Record) {
	s.records.Set(name, record)
}

// Get returns the record stored under name.
func (s *Snapshot) Get(name string) (Record, bool) {
	return s.records.Get(name)
}

// DeleteFunc removes every record whose name satisfies drop.
func (s *Snapshot) DeleteFunc(drop func(name string) bool) int {
	var names []string
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		if drop(pair.Key) {
			names = append(names, pair.Key)
		}
	}
	for _, name := range names {
		s.records.Delete(name)
	}
	return len(names)
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return s.records.Len()
}

// Keys returns the metric names in insertion order.
func (s *Snapshot) Keys() []string {
	keys := make([]string, 0, s.records.Len())
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every record in insertion order.
func (s *Snapshot) Each(fn func(name string, record Record)) {
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON writes the snapshot as a single object in insertion order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return s.records.MarshalJSON()
}
