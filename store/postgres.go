package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Postgres is a Store backed by PostgreSQL with JSONB documents, for
// hosted deployments where several engine processes share one world.
type Postgres struct {
	db *sql.DB
}

// NewPostgres connects to PostgreSQL and initializes the schema.
func NewPostgres(connStr string) (*Postgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT  NOT NULL,
		id         TEXT  NOT NULL,
		doc        JSONB NOT NULL,
		PRIMARY KEY (collection, id)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init postgres schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Get(ctx context.Context, collection, id string, doc any) (bool, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
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

func (p *Postgres) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc`,
		collection, id, string(raw))
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (p *Postgres) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	patch, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	// JSONB || merges top-level fields; the insert arm covers documents
	// that do not exist yet.
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id) DO UPDATE SET doc = documents.doc || EXCLUDED.doc`,
		collection, id, string(patch))
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (p *Postgres) Query(ctx context.Context, collection string, filter map[string]any) ([]json.RawMessage, error) {
	var rows *sql.Rows
	var err error
	if len(filter) == 0 {
		rows, err = p.db.QueryContext(ctx,
			`SELECT doc FROM documents WHERE collection = $1`, collection)
	} else {
		var match []byte
		match, err = json.Marshal(filter)
		if err != nil {
			return nil, err
		}
		rows, err = p.db.QueryContext(ctx,
			`SELECT doc FROM documents WHERE collection = $1 AND doc @> $2`,
			collection, string(match))
	}
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
		out = append(out, json.RawMessage(raw))
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error { return p.db.Close() }
