// Package storage archives processed invoice documents: the original upload,
// the raw extracted text, and lookup metadata, keyed by a generated ID.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no archive entry carries the requested ID.
var ErrNotFound = errors.New("archive entry not found")

// Entry describes one archived document.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	SourcePath string    `json:"source_path"` // relative to the archive root
	HasText    bool      `json:"has_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Archive stores and retrieves processed documents.
type Archive interface {
	// Save archives the original document bytes and the raw text that was
	// extracted from it. rawText may be empty for documents that never
	// yielded text.
	Save(ctx context.Context, filename string, source []byte, rawText string) (*Entry, error)

	// Get returns the metadata for an archived document.
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)

	// OpenSource streams the original document bytes.
	OpenSource(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)

	// Text returns the raw extracted text, or empty when none was stored.
	Text(ctx context.Context, id uuid.UUID) (string, error)

	// List returns all archive entries, newest first.
	List(ctx context.Context) ([]*Entry, error)

	// Delete removes an archived document and its metadata.
	Delete(ctx context.Context, id uuid.UUID) error
}
