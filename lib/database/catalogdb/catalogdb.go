// Package catalogdb persists Data Dragon name catalogs in a local SQLite file so a restart
// at an unchanged game version does not refetch them.
package catalogdb

import (
	"context"
	"database/sql"
	"fmt"

	"lolstreamsearch/lib/utils/logging"

	_ "github.com/mattn/go-sqlite3"
)

var logger = logging.NewLogger("CATALOG_DB")

const schema = `CREATE TABLE IF NOT EXISTS catalog_entry (
	version TEXT NOT NULL,
	kind    TEXT NOT NULL,
	id      INTEGER NOT NULL,
	name    TEXT NOT NULL,
	PRIMARY KEY (version, kind, id)
)`

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}

	logger.Debug("CONNECTED_TO_SQLITE3", map[string]any{
		logging.PATH: path,
	})
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the names stored for (version, kind). An empty map means no snapshot.
func (s *Store) Load(ctx context.Context, version, kind string) (map[int]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM catalog_entry WHERE version = ? AND kind = ?`, version, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// Save replaces the snapshot of (version, kind) with names in one transaction.
// Rows of older versions of the same kind are dropped.
func (s *Store) Save(ctx context.Context, version, kind string, names map[int]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_entry WHERE kind = ?`, kind); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_entry (version, kind, id, name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, name := range names {
		if _, err := stmt.ExecContext(ctx, version, kind, id, name); err != nil {
			return fmt.Errorf("insert %s %d: %w", kind, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("CATALOG_SNAPSHOT_SAVED", map[string]any{
		logging.VERSION: version,
		logging.TYPE:    kind,
		logging.COUNT:   len(names),
	})
	return nil
}
