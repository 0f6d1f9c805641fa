package lazycache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

func TestSyncRoundTrip(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := NewSync(Options[string, int]{Clock: clk})

	c.Put("a", 1)
	c.PutUntil("b", 2, clk.Now().Add(time.Second))

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("Get(b) = (%d, %v), want (2, true)", v, ok)
	}

	clk.Advance(2 * time.Second)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("Get(b) after expiry should miss")
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("Get(a) after delete should miss")
	}
}

func TestSyncSharedHandle(t *testing.T) {
	c := NewSync(Options[string, string]{})

	// copies of the pointer share the same lock and engine
	other := c
	other.Put("k", "v")

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("Get through original handle = (%q, %v)", v, ok)
	}
}

// Many goroutines read while writers churn disjoint keys. Run with -race;
// the final state must reflect every write exactly once.
func TestSyncConcurrentReadersAndWriters(t *testing.T) {
	const (
		writers    = 4
		readers    = 8
		perWriter  = 200
		perReader  = 500
		keyspaceSz = 50
	)

	c := NewSync(Options[string, int]{})
	for i := 0; i < keyspaceSz; i++ {
		c.Put(fmt.Sprintf("k%d", i), -1)
	}

	var g errgroup.Group
	for w := 0; w < writers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				key := fmt.Sprintf("k%d", (w*perWriter+i)%keyspaceSz)
				c.Put(key, w)
				if i%10 == 0 {
					c.Delete(key)
					c.Put(key, w)
				}
			}
			return nil
		})
	}
	for r := 0; r < readers; r++ {
		g.Go(func() error {
			for i := 0; i < perReader; i++ {
				key := fmt.Sprintf("k%d", i%keyspaceSz)
				if v, ok := c.Get(key); ok && (v < -1 || v >= writers) {
					return fmt.Errorf("observed torn value %d for %s", v, key)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if c.Len() != keyspaceSz {
		t.Fatalf("Len = %d, want %d", c.Len(), keyspaceSz)
	}
	for i := 0; i < keyspaceSz; i++ {
		key := fmt.Sprintf("k%d", i)
		if v, ok := c.Get(key); !ok || v < -1 || v >= writers {
			t.Fatalf("final Get(%s) = (%d, %v)", key, v, ok)
		}
	}
}

// Readers holding the shared lock all proceed together; a writer started
// while they are in flight only lands after every reader released.
func TestSyncReadersRunInParallel(t *testing.T) {
	const readers = 4

	c := NewSync(Options[string, int]{})
	c.Put("k", 1)

	var (
		entered sync.WaitGroup
		release = make(chan struct{})
		g       errgroup.Group
	)
	entered.Add(readers)

	for i := 0; i < readers; i++ {
		g.Go(func() error {
			c.mu.RLock()
			entered.Done()
			<-release
			_, ok := c.cache.Get("k")
			c.mu.RUnlock()
			if !ok {
				return fmt.Errorf("reader missed k")
			}
			return nil
		})
	}

	// All readers acquire the shared lock concurrently; this would deadlock
	// if shared acquisition were exclusive.
	entered.Wait()

	wrote := make(chan struct{})
	go func() {
		c.Put("k", 2) // blocks until every reader releases
		close(wrote)
	}()

	select {
	case <-wrote:
		t.Fatal("writer completed while readers held the shared lock")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	<-wrote

	if v, ok := c.Get("k"); !ok || v != 2 {
		t.Fatalf("Get(k) = (%d, %v), want (2, true)", v, ok)
	}
}

// Writers triggering sweeps under the lock must not disturb concurrent
// readers of unexpired keys.
func TestSyncSweepUnderContention(t *testing.T) {
	clk := clockwork.NewFakeClock()
	c := NewSync(Options[string, int]{Clock: clk})

	c.Put("stable", 42)
	for i := 0; i < 100; i++ {
		c.PutUntil(fmt.Sprintf("tmp%d", i), i, clk.Now().Add(time.Second))
	}
	clk.Advance(2 * time.Second)

	var g errgroup.Group
	g.Go(func() error {
		// each store sweeps a batch of the now-expired tmp keys
		for i := 0; i < 10; i++ {
			c.Put(fmt.Sprintf("fresh%d", i), i)
		}
		return nil
	})
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				if v, ok := c.Get("stable"); !ok || v != 42 {
					return fmt.Errorf("stable = (%d, %v)", v, ok)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	// first store already swept everything expired
	if c.Len() != 11 {
		t.Fatalf("Len = %d, want 11 (stable + 10 fresh)", c.Len())
	}
}
