package lazycache

import "cmp"

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on the write path while the caller (or the
// SyncCache write lock) holds the engine.
type Hooks[K cmp.Ordered, V any] interface {
	// An expired entry was removed during a store's sweep.
	EntryExpired(key K, value V)
}

// NopHooks is the default no-op
type NopHooks[K cmp.Ordered, V any] struct{}

func (NopHooks[K, V]) EntryExpired(K, V) {}
