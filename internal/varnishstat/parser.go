package varnishstat

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	apperrors "github.com/Schera-ole/statmerge/internal/errors"
	models "github.com/Schera-ole/statmerge/internal/model"
)

// Parse decodes 'varnishstat -1 -j' output into a snapshot.
//
// Two layouts exist. Up to Varnish 6.4 the output is a flat object of metric
// records plus a 'timestamp' string. Newer releases add a 'version' key and
// move the records into a 'counters' object.
func Parse(data []byte) (*models.Snapshot, error) {
	members, err := models.DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedOutput, err)
	}

	version := 0
	if raw, ok := members.Get("version"); ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, fmt.Errorf("%w: invalid version: %v", apperrors.ErrMalformedOutput, err)
		}
	}

	if version > 0 {
		counters, ok := members.Get("counters")
		if !ok {
			return nil, fmt.Errorf("%w: counters field is missing", apperrors.ErrMalformedOutput)
		}
		members, err = models.DecodeObject(counters)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid counters: %v", apperrors.ErrMalformedOutput, err)
		}
		return decodeRecords(members, nil)
	}

	return decodeRecords(members, map[string]bool{"timestamp": true, "version": true})
}

func decodeRecords(members *orderedmap.OrderedMap[string, json.RawMessage], skip map[string]bool) (*models.Snapshot, error) {
	snapshot := models.NewSnapshot()
	for pair := members.Oldest(); pair != nil; pair = pair.Next() {
		if skip[pair.Key] {
			continue
		}
		record, err := models.DecodeRecord(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid metric %s: %v", apperrors.ErrMalformedOutput, pair.Key, err)
		}
		snapshot.Set(pair.Key, record)
	}
	return snapshot, nil
}
