package asynchook

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/unkn0wn-root/lazycache"
)

type recordingHooks struct {
	mu      sync.Mutex
	expired map[string]int
}

func (h *recordingHooks) EntryExpired(key string, value int) {
	h.mu.Lock()
	h.expired[key] = value
	h.mu.Unlock()
}

func TestDeliversExpiryEventsOffTheWritePath(t *testing.T) {
	inner := &recordingHooks{expired: make(map[string]int)}
	h := New[string, int](inner, 1, 100)

	clk := clockwork.NewFakeClock()
	c := lazycache.New(lazycache.Options[string, int]{Clock: clk, Hooks: h})

	c.PutUntil("a", 1, clk.Now().Add(time.Second))
	clk.Advance(2 * time.Second)
	c.Put("b", 2) // sweep enqueues the expiry event

	h.Close() // drains the queue

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if v, ok := inner.expired["a"]; !ok || v != 1 {
		t.Fatalf("expiry event not delivered: %v", inner.expired)
	}
}

func TestFullQueueDropsInsteadOfBlocking(t *testing.T) {
	block := make(chan struct{})
	inner := &blockingHooks{release: block}
	h := New[string, int](inner, 1, 1)

	// first event occupies the worker; second fills the queue; the rest drop
	for i := 0; i < 10; i++ {
		h.EntryExpired("k", i)
	}
	close(block)
	h.Close()

	if n := inner.calls.Load(); n < 1 || n > 2 {
		t.Fatalf("delivered %d events, want 1 or 2", n)
	}
}

type blockingHooks struct {
	release chan struct{}
	calls   atomic.Int64
}

func (h *blockingHooks) EntryExpired(string, int) {
	<-h.release
	h.calls.Add(1)
}

func TestCloseIsIdempotent(t *testing.T) {
	h := New[string, int](&recordingHooks{expired: map[string]int{}}, 2, 10)
	h.Close()
	h.Close()
}
