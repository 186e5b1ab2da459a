package store

import "time"

// #region snapshot

// Snapshot is one persisted engine state version. StateBlob is the opaque
// export blob produced by the selection engine; StatsJSON is a summary of
// the trace statistics at save time, kept for inspection tooling.
type Snapshot struct {
	VersionID string
	ParentID  string
	StateBlob []byte
	StatsJSON string
	CreatedAt time.Time
}

// #endregion snapshot
