package selector

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arcanastate/engine-go/internal/trace"
	"github.com/arcanastate/engine-go/internal/vacuum"
)

// #region errors

// ErrStateImport is returned when an exported state blob cannot be applied.
// A failed import leaves the engine untouched.
var ErrStateImport = errors.New("incompatible state blob")

// #endregion errors

// #region snapshot-types

const snapshotSchemaVersion = 1

// engineSnapshot is the serialized form of all engine-owned mutable state.
type engineSnapshot struct {
	SchemaVersion int           `json:"schema_version"`
	Traces        []trace.Trace `json:"traces"`
	Vacuum        vacuum.State  `json:"vacuum"`
}

// #endregion snapshot-types

// #region export

// ExportState serializes the trace history and vacuum accumulators into an
// opaque blob. ImportState on the same blob reproduces equal state.
func (e *Engine) ExportState() ([]byte, error) {
	snap := engineSnapshot{
		SchemaVersion: snapshotSchemaVersion,
		Traces:        e.traces.Traces(),
		Vacuum:        e.vacuum.State(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return data, nil
}

// #endregion export

// #region import

// ImportState fully replaces the engine's mutable state from a blob produced
// by ExportState. All-or-nothing: validation happens before any mutation, so
// a malformed blob cannot leave the engine partially initialized.
func (e *Engine) ImportState(blob []byte) error {
	var snap engineSnapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrStateImport, err)
	}
	if snap.SchemaVersion != snapshotSchemaVersion {
		return fmt.Errorf("%w: schema version %d, want %d",
			ErrStateImport, snap.SchemaVersion, snapshotSchemaVersion)
	}
	for i, t := range snap.Traces {
		if t.Complexity < 0 {
			return fmt.Errorf("%w: trace %d has negative complexity", ErrStateImport, i)
		}
	}
	if snap.Vacuum.TraceCount < 0 || snap.Vacuum.Resistance < 0 || snap.Vacuum.Acceptance < 0 {
		return fmt.Errorf("%w: negative vacuum accumulators", ErrStateImport)
	}

	e.traces.Restore(snap.Traces)
	e.vacuum.Restore(snap.Vacuum)
	return nil
}

// #endregion import
