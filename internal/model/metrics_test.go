package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_SetKeepsInsertionOrder(t *testing.T) {
	s := NewSnapshot()
	s.Set("b", Record{Value: "1"})
	s.Set("a", Record{Value: "2"})
	s.Set("c", Record{Value: "3"})
	s.Set("a", Record{Value: "4"})

	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())
	record, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, json.Number("4"), record.Value)
}

func TestSnapshot_DeleteFunc(t *testing.T) {
	s := NewSnapshot()
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		s.Set(name, Record{})
	}

	removed := s.DeleteFunc(func(name string) bool { return name[0] == 'x' })

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"y1", "y2"}, s.Keys())
	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("x1")
	assert.False(t, ok)
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	s := NewSnapshot()
	s.Set("Z.last", Record{Description: "z", Flag: FlagGauge, Format: FormatBytes, Value: "10"})
	s.Set("A.first", Record{Description: "a", Flag: FlagCounter, Format: FormatInteger, Value: "0.25"})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.Equal(t,
		`{"Z.last":{"description":"z","flag":"g","format":"B","value":10},`+
			`"A.first":{"description":"a","flag":"c","format":"i","value":0.25}}`,
		string(data))
}

func TestSnapshot_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDecodeRecord(t *testing.T) {
	record, err := DecodeRecord(json.RawMessage(
		`{"description":"bits","flag":"b","format":"b","ident":"x","value":18446744073709551615}`))
	require.NoError(t, err)

	assert.True(t, record.IsBitmap())
	assert.False(t, record.IsCounter())
	assert.Equal(t, "bits", record.Description)
	assert.Equal(t, json.Number("18446744073709551615"), record.Value)
}

func TestDecodeRecord_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty object", input: `{}`},
		{name: "null value", input: `{"description":"d","flag":"c","format":"i","value":null}`},
		{name: "only null value", input: `{"value":null}`},
		{name: "missing description", input: `{"flag":"c","format":"i","value":5}`},
		{name: "missing value", input: `{"description":"d","flag":"c","format":"i"}`},
		{name: "string value", input: `{"description":"d","flag":"c","format":"i","value":"5"}`},
		{name: "numeric flag", input: `{"description":"d","flag":1,"format":"i","value":5}`},
		{name: "null format", input: `{"description":"d","flag":"c","format":null,"value":5}`},
		{name: "not an object", input: `5`},
		{name: "null", input: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord(json.RawMessage(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestDecodeObject(t *testing.T) {
	object, err := DecodeObject([]byte(`{"b":1,"a":{"x":true},"c":"s"}`))
	require.NoError(t, err)

	var keys []string
	for pair := object.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	nested, ok := object.Get("a")
	require.True(t, ok)
	assert.JSONEq(t, `{"x":true}`, string(nested))
}

func TestDecodeObject_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "varnishstat: command not found"},
		{name: "empty", input: ""},
		{name: "array", input: `[1,2,3]`},
		{name: "truncated", input: `{"a":{"value":1}`},
		{name: "trailing data", input: `{"a":1} {"b":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeObject([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber([]byte("5")))
	assert.True(t, IsNumber([]byte("-0.5")))
	assert.False(t, IsNumber([]byte(`"5"`)))
	assert.False(t, IsNumber([]byte("null")))
	assert.False(t, IsNumber(nil))
}
