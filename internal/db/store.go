// Package db stores rendered resume PDFs in PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultListLimit caps ListDocuments when no limit is given.
const DefaultListLimit = 50

// ErrInvalidDocument is returned when a document is missing required fields.
var ErrInvalidDocument = errors.New("invalid document")

// Document is a stored PDF and the metadata it was rendered with.
type Document struct {
	ID        uuid.UUID `json:"id"`
	OwnerName string    `json:"owner_name"`
	Template  string    `json:"template"`
	Filename  string    `json:"filename"`
	Content   []byte    `json:"-"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists rendered documents.
type Store interface {
	// SaveDocument assigns an ID and creation time when unset and stores doc.
	SaveDocument(ctx context.Context, doc *Document) error
	// GetDocument returns nil, nil when no document has the id.
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	// ListDocuments returns the most recent documents without their content.
	ListDocuments(ctx context.Context, limit int) ([]Document, error)
	Close() error
}

func prepareDocument(doc *Document, now func() time.Time) error {
	if doc == nil || len(doc.Content) == 0 {
		return ErrInvalidDocument
	}
	if doc.Filename == "" || doc.Template == "" {
		return ErrInvalidDocument
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now().UTC()
	}
	doc.Size = len(doc.Content)
	return nil
}

func listLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
