// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry persists finalized Outcomes in an append-only SQLite
// store keyed by subject. A new run for the same subject supersedes the
// previous outcome by appending; nothing is ever updated or deleted, so
// concurrent readers always see immutable records.
// Implements: prd006-registry (R1-R4); docs/ARCHITECTURE § Registry.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dialectic-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "outcomes.db"
)

// Store manages the outcome registry database.
type Store struct {
	db         *sql.DB
	stateDir   string
	maxResults int
}

// NewStore opens or creates the registry at stateDir/index/outcomes.db,
// creating the schema if it does not exist (R1.2, R1.3).
func NewStore(cfg types.RegistryConfig) (*Store, error) {
	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = "state"
	}
	dbDir := filepath.Join(stateDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, stateDir: stateDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS outcomes (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			protocol TEXT NOT NULL,
			subject TEXT NOT NULL,
			verdict TEXT NOT NULL,
			role TEXT NOT NULL,
			finalized_at TEXT NOT NULL,
			record TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_subject ON outcomes(subject)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_protocol ON outcomes(protocol)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save appends a finalized outcome. The registry is append-only: saving a
// run id twice is an error, and existing rows are never touched (R1.4).
func (s *Store) Save(ctx context.Context, out *types.Outcome) error {
	if out == nil || out.RunID == "" {
		return fmt.Errorf("outcome must carry a run id")
	}
	record, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding outcome %s: %w", out.RunID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO outcomes (run_id, protocol, subject, verdict, role, finalized_at, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		out.RunID, out.Protocol, out.Subject, string(out.Verdict), string(out.Role),
		out.FinalizedAt.UTC().Format(time.RFC3339Nano), string(record),
	)
	if err != nil {
		return fmt.Errorf("saving outcome %s: %w", out.RunID, err)
	}
	return nil
}

// Lookup returns the latest adopted outcome for a subject, or (nil, nil)
// when none exists. Composition-class challenges evaluate against adopted
// results only (R2.1, R2.2). Implements run.OutcomeSource.
func (s *Store) Lookup(ctx context.Context, subject string) (*types.Outcome, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM outcomes WHERE subject = ? AND role = ?
		 ORDER BY seq DESC LIMIT 1`,
		subject, string(types.RoleAdopted),
	).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up subject %q: %w", subject, err)
	}
	return decodeRecord(record)
}

// Get returns the outcome for a specific run id.
func (s *Store) Get(ctx context.Context, runID string) (*types.Outcome, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM outcomes WHERE run_id = ?`, runID,
	).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up run %s: %w", runID, err)
	}
	return decodeRecord(record)
}

func decodeRecord(record string) (*types.Outcome, error) {
	var out types.Outcome
	if err := json.Unmarshal([]byte(record), &out); err != nil {
		return nil, fmt.Errorf("decoding outcome record: %w", err)
	}
	return &out, nil
}
