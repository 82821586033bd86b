package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS pcm_documents (
  name       VARCHAR(64) NOT NULL PRIMARY KEY,
  body       LONGTEXT    NOT NULL,
  updated_at DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// SQLBackend stores documents as rows of the pcm_documents table.
type SQLBackend struct{ DB *sql.DB }

// NewSQLBackend makes sure the documents table exists.
func NewSQLBackend(ctx context.Context, db *sql.DB) (*SQLBackend, error) {
	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("create pcm_documents: %w", err)
	}
	return &SQLBackend{DB: db}, nil
}

// Load fetches the body stored under doc.
func (b *SQLBackend) Load(ctx context.Context, doc string) ([]byte, error) {
	var body string
	err := b.DB.QueryRowContext(ctx,
		"SELECT body FROM pcm_documents WHERE name=? LIMIT 1", doc).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", doc, err)
	}
	return []byte(body), nil
}

// Save upserts the document row.
func (b *SQLBackend) Save(ctx context.Context, doc string, data []byte) error {
	_, err := b.DB.ExecContext(ctx,
		"INSERT INTO pcm_documents (name, body) VALUES (?,?) ON DUPLICATE KEY UPDATE body=VALUES(body)",
		doc, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", doc, err)
	}
	return nil
}
