package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when the server shares one Redis instance across several
// deployments or users and each needs a separate cache namespace.
//
// Example usage:
//
//	// Per-user keys
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Shared keys
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

// DocumentKey generates a prefixed key for parsed document caching.
func (k *ScopedKeyer) DocumentKey(docHash string) string {
	return k.prefix + k.inner.DocumentKey(docHash)
}

// SceneKey generates a prefixed key for scene caching.
func (k *ScopedKeyer) SceneKey(docHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(docHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
