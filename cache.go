package lazycache

import (
	"cmp"
	"time"

	"github.com/google/btree"
	"github.com/jonboulle/clockwork"
)

// entry is a stored value plus its expiration instant.
// The zero expires means the entry never expires.
type entry[V any] struct {
	value   V
	expires time.Time
}

// expiration is an (instant, key) index record used to discover expired
// entries cheaply. Ordered by instant first, key second, so the index stays
// totally ordered even when several keys expire at the identical instant.
type expiration[K cmp.Ordered] struct {
	expires time.Time
	key     K
}

func expiresBefore[K cmp.Ordered](a, b expiration[K]) bool {
	if a.expires.Equal(b.expires) {
		return a.key < b.key
	}
	return a.expires.Before(b.expires)
}

// Cache is a single-threaded key/value cache with optional per-entry
// expiration. Not safe for concurrent use; wrap it in SyncCache for that.
//
// Storage: expiring entries are tracked in a B-tree index ordered by
// expiration instant. Every store removes the index's expired prefix along
// with the corresponding map entries, so cleanup cost is amortized over
// writes and memory is proportional to insertions, not wall-clock passage.
//
// Retrieval: Get only compares the entry's expiration against the current
// time. It never mutates, so repeated reads of an expired key keep returning
// a miss without shrinking the cache.
type Cache[K cmp.Ordered, V any] struct {
	entries map[K]entry[V]
	index   *btree.BTreeG[expiration[K]]
	clock   clockwork.Clock
	log     Logger
	hooks   Hooks[K, V]
}

// Put stores a value for the given key, replacing any previous entry.
// The entry never expires.
func (c *Cache[K, V]) Put(key K, value V) {
	c.PutUntil(key, value, time.Time{})
}

// PutUntil stores a value for the given key with an expiration instant.
// A zero expires means the entry never expires. Any expiration record for a
// previously stored entry under the same key is dropped from the index
// before the new one (if any) is added. Finally all entries whose expiration
// has passed are swept from the cache.
func (c *Cache[K, V]) PutUntil(key K, value V, expires time.Time) {
	if old, ok := c.entries[key]; ok && !old.expires.IsZero() {
		c.index.Delete(expiration[K]{expires: old.expires, key: key})
	}

	c.entries[key] = entry[V]{value: value, expires: expires}
	if !expires.IsZero() {
		c.index.ReplaceOrInsert(expiration[K]{expires: expires, key: key})
	}

	c.sweep(c.clock.Now())
}

// Get returns the value for the given key, if present and not expired.
// Expired entries are reported as misses but stay in the cache until the
// next store's sweep or an explicit Delete.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	ent, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !ent.expires.IsZero() && !ent.expires.After(c.clock.Now()) {
		var zero V
		return zero, false
	}
	return ent.value, true
}

// Delete removes any entry for the given key, including its expiration
// record. Deleting an absent key is a no-op.
func (c *Cache[K, V]) Delete(key K) {
	old, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	if !old.expires.IsZero() {
		c.index.Delete(expiration[K]{expires: old.expires, key: key})
	}
}

// Len returns the number of stored entries. Entries that expired but have
// not been swept yet are included.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// sweep removes every entry whose expiration instant is <= now. The index
// ordering makes this a prefix scan: iteration stops at the first record
// still in the future.
func (c *Cache[K, V]) sweep(now time.Time) {
	var expired []expiration[K]
	c.index.Ascend(func(rec expiration[K]) bool {
		if rec.expires.After(now) {
			return false
		}
		expired = append(expired, rec)
		return true
	})
	if len(expired) == 0 {
		return
	}

	for _, rec := range expired {
		ent := c.entries[rec.key]
		delete(c.entries, rec.key)
		c.index.Delete(rec)
		c.hooks.EntryExpired(rec.key, ent.value)
	}
	c.log.Debug("swept expired entries", Fields{"count": len(expired)})
}
