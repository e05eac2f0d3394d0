// Package store persists a history of past analysis runs to a local
// SQLite database, so a CLI or CI user can diff successive runs over the
// same project.
//
// It is purely additive bookkeeping layered outside the core: nothing in
// internal/analyzer imports this package, and a report is never altered by
// having been recorded. The driver usage (database/sql over
// modernc.org/sqlite, a CREATE TABLE IF NOT EXISTS bootstrap, parameterized
// Exec/Query) follows the pack's own sqlite builtin (mcgru-funxy's
// internal/evaluator/builtins_sql.go).
package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jingwhale/blockpy/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id TEXT PRIMARY KEY,
	analyzed_at TEXT NOT NULL,
	file TEXT NOT NULL,
	success INTEGER NOT NULL,
	issue_count INTEGER NOT NULL,
	payload TEXT NOT NULL
);
`

// Store wraps a single SQLite-backed history database.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its table, if absent) at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Run is one recorded analysis, denormalized for quick listing without
// re-decoding the full payload.
type Run struct {
	RunID      string
	AnalyzedAt time.Time
	File       string
	Success    bool
	IssueCount int
}

// runPayload is the JSON blob stored alongside each Run row: a summary of
// the report (per-kind issue counts and the top-level variable names). The
// individual issues and variable states are not stored.
type runPayload struct {
	Issues            map[string]int `json:"issueCounts"`
	TopLevelVariables []string       `json:"topLevelVariables"`
}

// Record inserts one row for a completed analysis.
func (s *Store) Record(runID, file string, at time.Time, rep *report.Report) error {
	issueCounts := map[string]int{}
	total := 0
	for kind, issues := range rep.Issues {
		issueCounts[string(kind)] = len(issues)
		total += len(issues)
	}
	names := make([]string, 0, len(rep.TopLevelVariables))
	for name := range rep.TopLevelVariables {
		names = append(names, name)
	}
	payload, err := json.Marshal(runPayload{Issues: issueCounts, TopLevelVariables: names})
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO analysis_runs(run_id, analyzed_at, file, success, issue_count, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, at.Format(time.RFC3339), file, boolToInt(rep.Success), total, string(payload),
	)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Recent returns the last n recorded runs, most recent first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, analyzed_at, file, success, issue_count FROM analysis_runs ORDER BY analyzed_at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var at string
		var success int
		if err := rows.Scan(&run.RunID, &at, &run.File, &success, &run.IssueCount); err != nil {
			return nil, err
		}
		run.AnalyzedAt, _ = time.Parse(time.RFC3339, at)
		run.Success = success != 0
		out = append(out, run)
	}
	return out, rows.Err()
}
