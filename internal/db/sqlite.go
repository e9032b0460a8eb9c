package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	owner_name  TEXT NOT NULL,
	template    TEXT NOT NULL,
	filename    TEXT NOT NULL,
	content     BLOB NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_created_at_idx ON documents (created_at DESC);`

// sqliteTime is fixed-width so created_at sorts as text.
const sqliteTime = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a Store in a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path. ":memory:" gives
// a private in-memory database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", filepath.Dir(path), err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) SaveDocument(ctx context.Context, doc *Document) error {
	if err := prepareDocument(doc, s.now); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, owner_name, template, filename, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID.String(), doc.OwnerName, doc.Template, doc.Filename, doc.Content,
		doc.CreatedAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_name, template, filename, content, created_at
		 FROM documents WHERE id = ?`, id.String())

	var doc Document
	var rawID, created string
	err := row.Scan(&rawID, &doc.OwnerName, &doc.Template, &doc.Filename, &doc.Content, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if err := scanSQLiteMeta(&doc, rawID, created); err != nil {
		return nil, err
	}
	doc.Size = len(doc.Content)
	return &doc, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, limit int) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_name, template, filename, length(content), created_at
		 FROM documents ORDER BY created_at DESC, id LIMIT ?`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := []Document{}
	for rows.Next() {
		var d Document
		var rawID, created string
		if err := rows.Scan(&rawID, &d.OwnerName, &d.Template, &d.Filename, &d.Size, &created); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if err := scanSQLiteMeta(&d, rawID, created); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanSQLiteMeta(d *Document, rawID, created string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", rawID, err)
	}
	at, err := time.Parse(sqliteTime, created)
	if err != nil {
		return fmt.Errorf("invalid created_at %q: %w", created, err)
	}
	d.ID, d.CreatedAt = id, at
	return nil
}
