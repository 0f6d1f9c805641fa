package lazycache

import (
	"cmp"

	"github.com/google/btree"
	"github.com/jonboulle/clockwork"
)

const defaultDegree = 16

// Options tune the behavior of a Cache (and, via NewSync, a SyncCache).
// Every field is optional; the zero value is a working configuration.
type Options[K cmp.Ordered, V any] struct {
	Clock  clockwork.Clock // time source; nil => wall clock
	Logger Logger          // nil => NopLogger
	Hooks  Hooks[K, V]     // nil => NopHooks
	Degree int             // expiration index B-tree degree; 0 => 16
}

// New constructs a Cache. The returned cache is ready for single-threaded
// use; use NewSync for concurrent access.
func New[K cmp.Ordered, V any](opts Options[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		entries: make(map[K]entry[V]),
		index:   btree.NewG[expiration[K]](coalesce(opts.Degree, defaultDegree), expiresBefore[K]),
	}

	// defaults
	c.clock = coalesce[clockwork.Clock](opts.Clock, clockwork.NewRealClock())
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks[K, V]](opts.Hooks, NopHooks[K, V]{})

	return c
}

// NewSync constructs a SyncCache around a fresh Cache built from opts.
func NewSync[K cmp.Ordered, V any](opts Options[K, V]) *SyncCache[K, V] {
	return &SyncCache[K, V]{cache: New(opts)}
}
