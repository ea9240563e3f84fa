// Package output renders a snapshot for standard output.
//
// Encoders render the whole document in memory and write it with a single
// call, so a failing encoder never leaves a partial document behind.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	apperrors "github.com/Schera-ole/statmerge/internal/errors"
	models "github.com/Schera-ole/statmerge/internal/model"
)

// Output formats accepted by New.
const (
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
)

// Encoder writes a snapshot to w.
type Encoder interface {
	Encode(w io.Writer, snapshot *models.Snapshot) error
}

// New returns the encoder for format.
func New(format string, logger *zap.SugaredLogger) (Encoder, error) {
	switch format {
	case FormatJSON:
		return &JSONEncoder{}, nil
	case FormatPrometheus:
		return NewPrometheusEncoder("statmerge", logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownOutput, format)
	}
}

// JSONEncoder writes the snapshot as one compact, newline-terminated JSON object.
type JSONEncoder struct{}

// Encode marshals the snapshot and writes it with a trailing newline.
func (e *JSONEncoder) Encode(w io.Writer, snapshot *models.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}
	return nil
}
