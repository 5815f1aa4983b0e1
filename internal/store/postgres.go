package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore keeps every dataset as a jsonb document in a single
// datasets table, one row per logical name.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS datasets (
			name       TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure datasets table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load(ctx context.Context, dataset string, out any) error {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM datasets WHERE name=$1`, dataset).Scan(&data)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", dataset, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode dataset %s: %w", dataset, err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, dataset string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", dataset, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO datasets (name, doc, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		dataset, data)
	if err != nil {
		return fmt.Errorf("save dataset %s: %w", dataset, err)
	}
	return nil
}
