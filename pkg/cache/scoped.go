package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind the serve host where different documents or
// users need separate cache namespaces.
//
// Example usage:
//
//	// Document-specific keys
//	docKeyer := NewScopedKeyer(NewDefaultKeyer(), "doc:abc123:")
//
//	// Global keys for shared schemas
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SchemaKey generates a prefixed key for parsed-schema caching.
func (k *ScopedKeyer) SchemaKey(sourceHash string) string {
	return k.prefix + k.inner.SchemaKey(sourceHash)
}

// DiagramKey generates a prefixed key for built-diagram caching.
func (k *ScopedKeyer) DiagramKey(schemaHash string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(schemaHash, opts)
}

// ArtifactKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(diagramHash, opts)
}
