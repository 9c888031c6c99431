// Package store persists schema documents for the serve platform.
//
// A document is a saved schema source plus the display state a user has
// built up against it (options, expanded nodes). Backends:
//   - file: JSON files in a config directory, for single-user hosts
//   - mongo: MongoDB collection, for multi-instance deployments
//
// Diagrams themselves are never stored; they are rebuilt from the
// document's source on demand, with the cache layer absorbing the cost.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/schemavis/schemavis/pkg/diagram"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a saved schema with its display state.
type Document struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`

	// Source is the raw schema document.
	Source []byte `json:"source" bson:"source"`

	// Options are the display options last applied by the user.
	Options diagram.Options `json:"options" bson:"options"`

	// Expanded maps node ids to the expand state the user set, as
	// overrides of the diagram's built defaults. A false entry records
	// the collapse of a default-expanded item such as a group.
	Expanded map[string]bool `json:"expanded,omitempty" bson:"expanded,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// New creates a document with a fresh id and timestamps.
func New(name string, source []byte) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document, assigning an id when empty and refreshing
	// the updated timestamp.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored document, newest first.
	List(ctx context.Context) ([]*Document, error)

	// Close releases backend resources.
	Close() error
}

// prepare normalizes a document before storage.
func prepare(doc *Document) {
	now := time.Now().UTC()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
}
