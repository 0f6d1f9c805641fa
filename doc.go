// Package lazycache implements an in-process key/value cache with optional
// per-entry expiration and lazy, write-amortized cleanup.
//
// Components:
//   - Cache[K, V]: the single-threaded engine. A lookup map paired with a
//     B-tree index ordered by (expiration instant, key). Every store runs a
//     prefix sweep of the index, removing entries whose expiration has passed.
//   - SyncCache[K, V]: the same engine behind a sync.RWMutex. Readers run in
//     parallel; writers get exclusive access for a whole operation.
//   - Typed[V]: a namespaced, codec-backed view over a shared
//     SyncCache[string, []byte] so multiple value types can share one cache.
//
// Expiration is lazy on both paths: Get compares the entry's expiration to
// the current time and never mutates, so retrieval stays O(1) regardless of
// how many entries have expired. Cleanup cost is paid exclusively by writers
// during the sweep. A cache that stops receiving stores retains expired
// entries until the next store or an explicit Delete.
//
// Typical use:
//
//	c := lazycache.NewSync(lazycache.Options[string, int]{})
//	c.PutUntil("session", 42, time.Now().Add(time.Minute))
//	v, ok := c.Get("session")
package lazycache
