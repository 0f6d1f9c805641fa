package lazycache

import (
	"cmp"
	"sync"
	"time"
)

// SyncCache is a Cache behind a reader/writer lock, safe for use from
// multiple goroutines. Reads share the lock and may proceed in parallel;
// writes are serialized and hold the lock exclusively for the whole
// operation (including the sweep), so readers always observe a consistent
// snapshot. Share a single *SyncCache between goroutines; copies of the
// pointer share the same lock and engine.
//
// Get returns the stored value by copy. For pointer or reference values the
// copy shares its referent with the cache, same as any Go map read.
type SyncCache[K cmp.Ordered, V any] struct {
	mu    sync.RWMutex
	cache *Cache[K, V]
}

// Put stores a value for the given key, replacing any previous entry.
// The entry never expires. Blocks until it acquires the write lock.
func (s *SyncCache[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(key, value)
}

// PutUntil stores a value for the given key with an expiration instant
// (zero => never expires). Blocks until it acquires the write lock.
func (s *SyncCache[K, V]) PutUntil(key K, value V, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.PutUntil(key, value, expires)
}

// Get returns the value for the given key, if present and not expired.
// Blocks until it acquires the read lock; concurrent Gets do not block
// each other.
func (s *SyncCache[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Get(key)
}

// Delete removes any entry for the given key. Blocks until it acquires the
// write lock.
func (s *SyncCache[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(key)
}

// Len returns the number of stored entries, expired-but-unswept included.
func (s *SyncCache[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Len()
}
