package lazycache

import (
	"fmt"
	"time"

	"github.com/unkn0wn-root/lazycache/codec"
)

// Typed is a namespaced, codec-backed view over a shared
// SyncCache[string, []byte]. Several views with distinct namespaces (and
// typically distinct value types) can share one cache instance; entries are
// stored under "<ns>:<key>" so views never collide.
//
// Serialization is handled by a pluggable codec.Codec[V]. Encode errors are
// returned to the caller; entries whose payload no longer decodes are
// self-healed: deleted and reported as a miss.
type Typed[V any] struct {
	cache *SyncCache[string, []byte]
	ns    string
	codec codec.Codec[V]
	log   Logger
}

// NewTyped constructs a view over cache using the given namespace and codec.
func NewTyped[V any](cache *SyncCache[string, []byte], namespace string, c codec.Codec[V]) (*Typed[V], error) {
	if cache == nil {
		return nil, fmt.Errorf("lazycache: cache is required")
	}
	if namespace == "" {
		return nil, fmt.Errorf("lazycache: namespace is required")
	}
	if c == nil {
		return nil, fmt.Errorf("lazycache: codec is required")
	}
	return &Typed[V]{
		cache: cache,
		ns:    namespace,
		codec: c,
		log:   cache.cache.log,
	}, nil
}

// Put encodes value and stores it under key. The entry never expires.
func (t *Typed[V]) Put(key string, value V) error {
	return t.PutUntil(key, value, time.Time{})
}

// PutUntil encodes value and stores it under key with an expiration instant
// (zero => never expires).
func (t *Typed[V]) PutUntil(key string, value V, expires time.Time) error {
	payload, err := t.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("lazycache: encode %q: %w", key, err)
	}
	t.cache.PutUntil(t.storageKey(key), payload, expires)
	return nil
}

// Get returns the decoded value for key, if present and not expired.
// A payload that fails to decode is deleted and reported as a miss.
func (t *Typed[V]) Get(key string) (V, bool) {
	var zero V
	k := t.storageKey(key)
	payload, ok := t.cache.Get(k)
	if !ok {
		return zero, false
	}
	v, err := t.codec.Decode(payload)
	if err != nil {
		// self-heal corrupt payloads
		t.cache.Delete(k)
		t.log.Warn("deleted undecodable entry", Fields{"key": k, "err": err})
		return zero, false
	}
	return v, true
}

// Delete removes any entry for key. No-op if absent.
func (t *Typed[V]) Delete(key string) {
	t.cache.Delete(t.storageKey(key))
}

func (t *Typed[V]) storageKey(userKey string) string {
	// isolate by namespace
	return t.ns + ":" + userKey
}
