package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS engine_snapshots (
	version_id    TEXT PRIMARY KEY,
	parent_id     TEXT,
	state_blob    BLOB NOT NULL,
	stats_json    TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES engine_snapshots(version_id)
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id        TEXT NOT NULL,
	round_id          TEXT,
	method            TEXT NOT NULL,
	winner_id         TEXT,
	winner_text       TEXT,
	score             REAL,
	vacuum_adjustment REAL,
	candidates_json   TEXT,
	reason            TEXT,
	created_at        TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES engine_snapshots(version_id)
);

CREATE TABLE IF NOT EXISTS active_snapshot (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	version_id    TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES engine_snapshots(version_id)
);
`
// #endregion schema

// #region store-struct
// Store manages versioned engine snapshots in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an already-open database. The caller owns the
// connection and its migration state.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region save
// SaveSnapshot inserts a new snapshot and moves the active pointer to it
// atomically. parentID may be empty for the first snapshot in a chain.
func (s *Store) SaveSnapshot(parentID string, stateBlob []byte, statsJSON string) (Snapshot, error) {
	snap := Snapshot{
		VersionID: uuid.New().String(),
		ParentID:  parentID,
		StateBlob: stateBlob,
		StatsJSON: statsJSON,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var parentPtr interface{}
	if parentID != "" {
		parentPtr = parentID
	}
	var statsPtr interface{}
	if statsJSON != "" {
		statsPtr = statsJSON
	}

	_, err = tx.Exec(
		`INSERT INTO engine_snapshots (version_id, parent_id, state_blob, stats_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		snap.VersionID, parentPtr, stateBlob, statsPtr, snap.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO active_snapshot (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		snap.VersionID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit: %w", err)
	}

	return snap, nil
}
// #endregion save

// #region current
// Current reads the active snapshot.
func (s *Store) Current() (Snapshot, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_snapshot WHERE id = 1`).Scan(&versionID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get active: %w", err)
	}
	return s.Get(versionID)
}
// #endregion current

// #region get
// Get retrieves a specific snapshot by version ID.
func (s *Store) Get(id string) (Snapshot, error) {
	var snap Snapshot
	var parentID sql.NullString
	var statsJSON sql.NullString
	var createdStr string

	err := s.db.QueryRow(
		`SELECT version_id, parent_id, state_blob, stats_json, created_at
		 FROM engine_snapshots WHERE version_id = ?`, id,
	).Scan(&snap.VersionID, &parentID, &snap.StateBlob, &statsJSON, &createdStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}

	if parentID.Valid {
		snap.ParentID = parentID.String
	}
	if statsJSON.Valid {
		snap.StatsJSON = statsJSON.String
	}
	snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)

	return snap, nil
}
// #endregion get

// #region rollback
// Rollback sets the active pointer to a previous snapshot.
func (s *Store) Rollback(targetVersionID string) error {
	// Verify the target snapshot exists
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM engine_snapshots WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check snapshot: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("snapshot %s not found", targetVersionID)
	}

	_, err = s.db.Exec(`UPDATE active_snapshot SET version_id = ? WHERE id = 1`, targetVersionID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
// #endregion rollback

// #region list
// List returns the most recent snapshots.
func (s *Store) List(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, state_blob, stats_json, created_at
		 FROM engine_snapshots ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var parentID sql.NullString
		var statsJSON sql.NullString
		var createdStr string

		if err := rows.Scan(&snap.VersionID, &parentID, &snap.StateBlob, &statsJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parentID.Valid {
			snap.ParentID = parentID.String
		}
		if statsJSON.Valid {
			snap.StatsJSON = statsJSON.String
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
// #endregion list
