// Package cache provides byte-oriented caching for the diagram
// pipeline, keyed by content hashes so identical inputs reuse identical
// results.
//
// Backends: [FileCache] for CLI usage, [RedisCache] for the serve
// platform, and [NullCache] to disable caching. Key construction goes
// through a [Keyer] so hosts can scope namespaces without touching the
// pipeline.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Diagrams are cheap to rebuild, so
// they expire sooner than rendered artifacts.
const (
	TTLDiagram  = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DiagramKeyOpts are the build inputs that affect diagram identity
// beyond the schema bytes themselves.
type DiagramKeyOpts struct {
	ShowDocumentation    bool
	AlwaysShowOccurrence bool
	ShowTypeLabels       bool
}

// ArtifactKeyOpts are the render inputs that affect artifact identity
// beyond the diagram itself.
type ArtifactKeyOpts struct {
	// Format is the output format (svg, dot, json).
	Format string

	// Scale is the render scale factor.
	Scale float64

	// ExpandedHash fingerprints the set of expanded node ids, so each
	// expand state caches its own artifact.
	ExpandedHash string
}

// Keyer constructs cache keys for each pipeline stage.
type Keyer interface {
	// SchemaKey keys a parsed schema by the hash of its source bytes.
	SchemaKey(sourceHash string) string

	// DiagramKey keys a built diagram by schema hash plus build options.
	DiagramKey(schemaHash string, opts DiagramKeyOpts) string

	// ArtifactKey keys a rendered artifact by diagram hash plus render
	// options.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a
// SHA-256 over the identifying inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SchemaKey generates a key for parsed-schema caching.
func (k *DefaultKeyer) SchemaKey(sourceHash string) string {
	return "schema:" + sourceHash
}

// DiagramKey generates a key for built-diagram caching.
func (k *DefaultKeyer) DiagramKey(schemaHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", schemaHash, opts)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
