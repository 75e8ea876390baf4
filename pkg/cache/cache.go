// Package cache provides pluggable byte caches and key derivation for the
// scene pipeline.
//
// Three backends implement the Cache interface: FileCache for CLI usage,
// RedisCache for server deployments, and NullCache for disabling caching.
// Keys are derived through a Keyer so different pipeline stages and
// deployments can share a backend without collisions.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per cached artifact type. Documents and scenes are cheap to
// recompute; rendered artifacts are the expensive stage.
const (
	// TTLDocument is the lifetime of cached parsed document trees.
	TTLDocument = 24 * time.Hour

	// TTLScene is the lifetime of cached laid-out scenes.
	TTLScene = 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts (SVG, PNG, DOT).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Errors indicate backend failures, not misses.
type Cache interface {
	// Get retrieves a value from the cache.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer
// =============================================================================

// SceneKeyOpts are the options that distinguish laid-out scenes for the same
// document. ConfigHash is a hash of the layout configuration.
type SceneKeyOpts struct {
	ConfigHash string
}

// ArtifactKeyOpts are the options that distinguish rendered artifacts for the
// same scene.
type ArtifactKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for the three pipeline stages.
// Implementations must be deterministic: equal inputs produce equal keys.
type Keyer interface {
	// DocumentKey generates a key for a parsed document tree.
	// docHash is a hash of the raw markdown source.
	DocumentKey(docHash string) string

	// SceneKey generates a key for a laid-out scene.
	SceneKey(docHash string, opts SceneKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// sceneHash is a hash of the serialized scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for a parsed document tree.
func (k *DefaultKeyer) DocumentKey(docHash string) string {
	return "doc:" + docHash
}

// SceneKey generates a key for a laid-out scene.
func (k *DefaultKeyer) SceneKey(docHash string, opts SceneKeyOpts) string {
	return hashKey("scene", docHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// =============================================================================
// Content Hashing
// =============================================================================

// Hash returns the SHA-256 of data as a 64-character hex string. Document
// and scene hashes throughout the pipeline are produced by this function, so
// equal content always maps to the same cache entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey derives a "prefix:hex" cache key from the given parts. The parts
// are JSON-encoded before hashing so option structs contribute their field
// values, not their memory layout. The full 256-bit digest is kept; keys are
// never truncated.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}
