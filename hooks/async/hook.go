// Package asynchook decouples hook callbacks from the cache's write path.
// Events are queued and delivered by background workers; when the queue is
// full, events are dropped rather than blocking a store's sweep.
//
// usage:
//
//	raw := sloghooks.New[string, int](slog.Default(), sloghooks.Options{
//	    ExpiredEvery: 10, // sample logs: ~every 10th expiry
//	})
//
//	hooks := asynchook.New[string, int](raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache := lazycache.NewSync(lazycache.Options[string, int]{
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"cmp"
	"sync"

	"github.com/unkn0wn-root/lazycache"
)

type Hooks[K cmp.Ordered, V any] struct {
	inner lazycache.Hooks[K, V]
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ lazycache.Hooks[string, int] = (*Hooks[string, int])(nil)

func New[K cmp.Ordered, V any](inner lazycache.Hooks[K, V], workers, qlen int) *Hooks[K, V] {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks[K, V]{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks[K, V]) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks[K, V]) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks[K, V]) EntryExpired(key K, value V) {
	h.try(func() { h.inner.EntryExpired(key, value) })
}
