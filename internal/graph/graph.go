package graph

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS pattern_edges (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    source_pattern TEXT NOT NULL,
    target_pattern TEXT NOT NULL,
    weight         REAL NOT NULL DEFAULT 0.1,
    created_at     TEXT NOT NULL,
    updated_at     TEXT NOT NULL,
    UNIQUE(source_pattern, target_pattern)
);
CREATE INDEX IF NOT EXISTS idx_pattern_edges_source ON pattern_edges(source_pattern);
CREATE INDEX IF NOT EXISTS idx_pattern_edges_target ON pattern_edges(target_pattern);
`

// #endregion schema

// #region types
// Edge represents a weighted co-occurrence link between two mined patterns.
type Edge struct {
	ID            int64
	SourcePattern string
	TargetPattern string
	Weight        float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WalkResult holds an ordered path from a graph walk.
type WalkResult struct {
	Patterns []string  // patterns in walk order
	Scores   []float64 // cumulative scores at each node
}

// CooccurrenceGraph manages the pattern_edges table.
type CooccurrenceGraph struct {
	db *sql.DB
}

// #endregion types

// #region constructor
// NewCooccurrenceGraph creates tables and returns a graph.
func NewCooccurrenceGraph(db *sql.DB) (*CooccurrenceGraph, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("graph schema: %w", err)
	}
	return &CooccurrenceGraph{db: db}, nil
}

// #endregion constructor

// #region add-edge
// AddEdge inserts a new edge. If the edge already exists, it is ignored.
func (g *CooccurrenceGraph) AddEdge(source, target string, weight float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := g.db.Exec(
		`INSERT OR IGNORE INTO pattern_edges (source_pattern, target_pattern, weight, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		source, target, weight, now, now,
	)
	return err
}

// #endregion add-edge

// #region increment-edge
// IncrementEdge increases the weight of an existing edge by delta, capped at 1.0.
// If the edge doesn't exist, it is created with weight=delta.
func (g *CooccurrenceGraph) IncrementEdge(source, target string, delta float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := g.db.Exec(
		`INSERT INTO pattern_edges (source_pattern, target_pattern, weight, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_pattern, target_pattern) DO UPDATE SET
		   weight = MIN(1.0, pattern_edges.weight + ?),
		   updated_at = ?`,
		source, target, delta, now, now,
		delta, now,
	)
	return err
}

// #endregion increment-edge

// #region seed
// SeedCooccurrence links every ordered pair among patterns that were mined
// from the same trace corpus, incrementing each pair edge by delta.
func (g *CooccurrenceGraph) SeedCooccurrence(patterns []string, delta float64) error {
	for i, src := range patterns {
		for j, dst := range patterns {
			if i == j {
				continue
			}
			if err := g.IncrementEdge(src, dst, delta); err != nil {
				return fmt.Errorf("seed edge %q -> %q: %w", src, dst, err)
			}
		}
	}
	return nil
}

// #endregion seed

// #region neighbors
// Neighbors returns all edges from source with weight >= minWeight, ordered
// by weight descending.
func (g *CooccurrenceGraph) Neighbors(pattern string, minWeight float64) ([]Edge, error) {
	rows, err := g.db.Query(
		`SELECT id, source_pattern, target_pattern, weight, created_at, updated_at
		 FROM pattern_edges
		 WHERE source_pattern = ? AND weight >= ?
		 ORDER BY weight DESC`,
		pattern, minWeight,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		var createdAt, updatedAt string
		if err := rows.Scan(&e.ID, &e.SourcePattern, &e.TargetPattern, &e.Weight, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// #endregion neighbors

// #region walk
// Walk performs a BFS from entry, following edges with weight >= minWeight,
// up to maxDepth hops and maxNodes total. Returns patterns in visit order
// with cumulative scores.
func (g *CooccurrenceGraph) Walk(entry string, maxDepth int, minWeight float64, maxNodes int) (WalkResult, error) {
	if maxDepth <= 0 {
		maxDepth = 5
	}
	if maxNodes <= 0 {
		maxNodes = 10
	}

	result := WalkResult{
		Patterns: []string{entry},
		Scores:   []float64{1.0},
	}
	visited := map[string]bool{entry: true}

	// BFS queue: (pattern, depth, cumulativeScore)
	type queueItem struct {
		pattern string
		depth   int
		score   float64
	}
	queue := []queueItem{{entry, 0, 1.0}}

	for len(queue) > 0 {
		if len(result.Patterns) >= maxNodes {
			break
		}

		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		neighbors, err := g.Neighbors(current.pattern, minWeight)
		if err != nil {
			return result, fmt.Errorf("walk neighbors: %w", err)
		}

		for _, edge := range neighbors {
			if len(result.Patterns) >= maxNodes {
				break
			}
			if visited[edge.TargetPattern] {
				continue
			}
			visited[edge.TargetPattern] = true
			cumScore := current.score * edge.Weight
			result.Patterns = append(result.Patterns, edge.TargetPattern)
			result.Scores = append(result.Scores, cumScore)
			queue = append(queue, queueItem{edge.TargetPattern, current.depth + 1, cumScore})
		}
	}

	return result, nil
}

// #endregion walk

// #region decay
// DecayAll applies exponential decay to all edge weights based on time since
// last update. Edges that fall below 0.01 are deleted.
func (g *CooccurrenceGraph) DecayAll(halfLifeHours float64) (int64, error) {
	now := time.Now().UTC()
	halfLifeSec := halfLifeHours * 3600.0

	rows, err := g.db.Query(
		`SELECT id, weight, updated_at FROM pattern_edges`,
	)
	if err != nil {
		return 0, err
	}

	type decayItem struct {
		id        int64
		newWeight float64
	}
	var updates []decayItem
	var deletes []int64

	for rows.Next() {
		var id int64
		var weight float64
		var updatedAt string
		if err := rows.Scan(&id, &weight, &updatedAt); err != nil {
			rows.Close()
			return 0, err
		}
		t, _ := time.Parse(time.RFC3339, updatedAt)
		ageSec := now.Sub(t).Seconds()
		if ageSec <= 0 {
			continue
		}
		decayed := weight * math.Exp(-ageSec*math.Ln2/halfLifeSec)
		if decayed < 0.01 {
			deletes = append(deletes, id)
		} else {
			updates = append(updates, decayItem{id, decayed})
		}
	}
	rows.Close()

	nowStr := now.Format(time.RFC3339)
	for _, u := range updates {
		if _, err := g.db.Exec(`UPDATE pattern_edges SET weight = ?, updated_at = ? WHERE id = ?`, u.newWeight, nowStr, u.id); err != nil {
			return 0, err
		}
	}
	for _, id := range deletes {
		if _, err := g.db.Exec(`DELETE FROM pattern_edges WHERE id = ?`, id); err != nil {
			return 0, err
		}
	}

	return int64(len(deletes)), nil
}

// #endregion decay

// #region sever
// SeverPattern deletes all edges where pattern is either source or target.
func (g *CooccurrenceGraph) SeverPattern(pattern string) error {
	_, err := g.db.Exec(
		`DELETE FROM pattern_edges WHERE source_pattern = ? OR target_pattern = ?`,
		pattern, pattern,
	)
	return err
}

// #endregion sever
