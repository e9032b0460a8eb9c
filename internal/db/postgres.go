package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id          UUID PRIMARY KEY,
	owner_name  TEXT NOT NULL,
	template    TEXT NOT NULL,
	filename    TEXT NOT NULL,
	content     BYTEA NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS documents_created_at_idx ON documents (created_at DESC);`

// PostgresStore is a Store backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore connects to databaseURL and creates the documents table
// if needed.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &PostgresStore{pool: pool, now: time.Now}, nil
}

func (s *PostgresStore) SaveDocument(ctx context.Context, doc *Document) error {
	if err := prepareDocument(doc, s.now); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (id, owner_name, template, filename, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.OwnerName, doc.Template, doc.Filename, doc.Content, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_name, template, filename, content, created_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.OwnerName, &doc.Template, &doc.Filename, &doc.Content, &doc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	doc.Size = len(doc.Content)
	return &doc, nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context, limit int) ([]Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_name, template, filename, octet_length(content), created_at
		 FROM documents ORDER BY created_at DESC, id LIMIT $1`, listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.OwnerName, &d.Template, &d.Filename, &d.Size, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
