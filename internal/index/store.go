// Package index maintains a SQLite catalog of string table entries across
// many integrations, so maintainers can query keys and find dangling
// references before a release.
package index

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/emberlink/flowstrings/pkg/strtab"
)

//go:embed schema.sql
var schemaSQL string

// Database file name inside the data directory.
const dbFileName = "catalog.db"

// Entry kinds.
const (
	KindLiteral   = "literal"
	KindReference = "reference"
)

// Snapshot records one import of an integration's string table.
type Snapshot struct {
	SnapshotID string
	Domain     string
	SourcePath string
	CreatedAt  string
	Entries    int
}

// Entry is one indexed string table value.
type Entry struct {
	SnapshotID string
	Domain     string
	Path       string
	Kind       string
	Value      string
	RefTarget  string
	Resolved   string
	Problem    string
}

// Store is the SQLite-backed catalog index. The index keeps the latest
// snapshot per integration domain; re-importing a domain replaces its rows.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	open bool
}

// Open creates the data directory if needed, opens the index database, and
// applies the schema.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db, open: true}, nil
}

// Close releases the database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil
	}
	s.open = false
	return s.db.Close()
}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("index store is closed")

// ImportCatalog indexes every entry of a catalog under the given
// integration domain, replacing any previous snapshot for that domain.
// Reference tokens are resolved during import; failures are recorded on the
// entry rather than aborting the import, so one broken table still indexes.
func (s *Store) ImportCatalog(domain, sourcePath string, c *strtab.Catalog) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return Snapshot{}, ErrClosed
	}

	snap := Snapshot{
		SnapshotID: uuid.Must(uuid.NewV7()).String(),
		Domain:     domain,
		SourcePath: sourcePath,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries WHERE domain = ?`, domain); err != nil {
		return Snapshot{}, fmt.Errorf("clearing previous entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE domain = ?`, domain); err != nil {
		return Snapshot{}, fmt.Errorf("clearing previous snapshot: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO snapshots (snapshot_id, domain, source_path, created_at) VALUES (?, ?, ?, ?)`,
		snap.SnapshotID, snap.Domain, snap.SourcePath, snap.CreatedAt,
	); err != nil {
		return Snapshot{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	insert, err := tx.Prepare(`INSERT INTO entries
		(snapshot_id, domain, path, kind, value, ref_target, resolved, problem)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing entry insert: %w", err)
	}
	defer insert.Close()

	for _, path := range c.Keys() {
		raw, _ := c.Table().Value(path)
		e := Entry{
			SnapshotID: snap.SnapshotID,
			Domain:     domain,
			Path:       path,
			Kind:       KindLiteral,
			Value:      raw,
		}
		if target, ok := strtab.ReferencePath(raw); ok {
			e.Kind = KindReference
			e.RefTarget = target
		}
		if resolved, err := c.Lookup(path); err != nil {
			e.Problem = err.Error()
		} else {
			e.Resolved = resolved
		}
		if _, err := insert.Exec(
			e.SnapshotID, e.Domain, e.Path, e.Kind, e.Value, e.RefTarget, e.Resolved, e.Problem,
		); err != nil {
			return Snapshot{}, fmt.Errorf("inserting entry %s: %w", path, err)
		}
		snap.Entries++
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("committing import: %w", err)
	}
	return snap, nil
}

// Snapshots lists the indexed snapshots, ordered by domain.
func (s *Store) Snapshots() ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(`SELECT s.snapshot_id, s.domain, s.source_path, s.created_at,
			(SELECT COUNT(*) FROM entries e WHERE e.snapshot_id = s.snapshot_id)
		FROM snapshots s ORDER BY s.domain`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.SnapshotID, &snap.Domain, &snap.SourcePath,
			&snap.CreatedAt, &snap.Entries); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Entries returns the indexed entries for one domain, ordered by path.
func (s *Store) Entries(domain string) ([]Entry, error) {
	return s.queryEntries(`SELECT snapshot_id, domain, path, kind, value, ref_target, resolved, problem
		FROM entries WHERE domain = ? ORDER BY path`, domain)
}

// DanglingReferences returns every indexed entry whose reference token
// failed to resolve, across all domains.
func (s *Store) DanglingReferences() ([]Entry, error) {
	return s.queryEntries(`SELECT snapshot_id, domain, path, kind, value, ref_target, resolved, problem
		FROM entries WHERE problem != '' ORDER BY domain, path`)
}

func (s *Store) queryEntries(query string, args ...any) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SnapshotID, &e.Domain, &e.Path, &e.Kind,
			&e.Value, &e.RefTarget, &e.Resolved, &e.Problem); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
