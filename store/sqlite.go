package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // cgo-free SQLite driver
)

// SQLite is a file-backed Store for persistent local play. Documents live
// in a single table keyed by (collection, id).
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if needed initializes) a SQLite-backed store at the
// given path. Use ":memory:" for a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent turns.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		doc        TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, collection, id string, doc any) (bool, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE collection = ? AND id = ?`,
		collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return true, nil
}

func (s *SQLite) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET doc = excluded.doc`,
		collection, id, string(raw))
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLite) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	var existing []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE collection = ? AND id = ?`,
		collection, id).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	merged, err := mergeFields(existing, fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET doc = excluded.doc`,
		collection, id, string(merged))
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLite) Query(ctx context.Context, collection string, filter map[string]any) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		if matchesFilter(raw, filter) {
			out = append(out, json.RawMessage(raw))
		}
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }
