package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-selection
// LogSelection writes a selection provenance entry to the provenance_log table.
func LogSelection(db *sql.DB, entry SelectionEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (version_id, round_id, method, winner_id, winner_text, score, vacuum_adjustment, candidates_json, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.VersionID,
		nullIfEmpty(entry.RoundID),
		entry.Method,
		nullIfEmpty(entry.WinnerID),
		nullIfEmpty(entry.WinnerText),
		entry.Score,
		entry.VacuumAdjustment,
		nullIfEmpty(entry.CandidatesJSON),
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log selection: %w", err)
	}
	return nil
}
// #endregion log-selection

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
