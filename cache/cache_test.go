package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func countingProducer(value string, calls *atomic.Int32) func() ([]byte, error) {
	return func() ([]byte, error) {
		calls.Add(1)
		return []byte(value), nil
	}
}

func TestGetOrComputeMemoizes(t *testing.T) {
	c := NewMemoryViewCache(10)
	ctx := context.Background()
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute(ctx, "k", 60*time.Second, countingProducer("payload", &calls))
		if err != nil {
			t.Fatalf("GetOrCompute: %v", err)
		}
		if string(v) != "payload" {
			t.Fatalf("value = %q, want %q", v, "payload")
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("producer invoked %d times, want 1", got)
	}
}

func TestPurgeForcesRecompute(t *testing.T) {
	c := NewMemoryViewCache(10)
	ctx := context.Background()
	var calls atomic.Int32

	if _, err := c.GetOrCompute(ctx, "k", 60*time.Second, countingProducer("v", &calls)); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if err := c.Purge(ctx, "k"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, err := c.GetOrCompute(ctx, "k", 60*time.Second, countingProducer("v", &calls)); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("producer invoked %d times, want 2", got)
	}
}

func TestPurgeMissingKeyIsNoop(t *testing.T) {
	c := NewMemoryViewCache(10)
	if err := c.Purge(context.Background(), "absent"); err != nil {
		t.Fatalf("Purge on absent key: %v", err)
	}
}

func TestEntryExpires(t *testing.T) {
	c := NewMemoryViewCache(10)
	ctx := context.Background()
	var calls atomic.Int32

	base := time.Now()
	c.now = func() time.Time { return base }

	if _, err := c.GetOrCompute(ctx, "k", 10*time.Second, countingProducer("v", &calls)); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}

	// Just inside the TTL: still a hit.
	c.now = func() time.Time { return base.Add(9 * time.Second) }
	if _, err := c.GetOrCompute(ctx, "k", 10*time.Second, countingProducer("v", &calls)); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("producer invoked %d times before expiry, want 1", got)
	}

	// Past the TTL: recompute.
	c.now = func() time.Time { return base.Add(11 * time.Second) }
	if _, err := c.GetOrCompute(ctx, "k", 10*time.Second, countingProducer("v", &calls)); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("producer invoked %d times after expiry, want 2", got)
	}
}

func TestConcurrentMissesCoalesce(t *testing.T) {
	c := NewMemoryViewCache(10)
	ctx := context.Background()
	var calls atomic.Int32

	release := make(chan struct{})
	slow := func() ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("v"), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := c.GetOrCompute(ctx, "k", time.Minute, slow); err != nil {
				t.Errorf("GetOrCompute: %v", err)
			}
		}()
	}
	// Give every goroutine a chance to reach the flight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("producer invoked %d times across concurrent misses, want 1", got)
	}
}

func TestCapacityEvicts(t *testing.T) {
	c := NewMemoryViewCache(2)
	ctx := context.Background()
	var calls atomic.Int32

	base := time.Now()
	c.now = func() time.Time { return base }

	// "a" expires first and should be the eviction victim.
	if _, err := c.GetOrCompute(ctx, "a", 10*time.Second, countingProducer("a", &calls)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute(ctx, "b", 60*time.Second, countingProducer("b", &calls)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute(ctx, "c", 60*time.Second, countingProducer("c", &calls)); err != nil {
		t.Fatal(err)
	}

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	before := calls.Load()
	if _, err := c.GetOrCompute(ctx, "a", 10*time.Second, countingProducer("a", &calls)); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != before+1 {
		t.Fatal("expected evicted key to recompute")
	}
}

func TestSweepDropsExpired(t *testing.T) {
	c := NewMemoryViewCache(10)
	ctx := context.Background()
	var calls atomic.Int32

	base := time.Now()
	c.now = func() time.Time { return base }
	if _, err := c.GetOrCompute(ctx, "short", time.Second, countingProducer("s", &calls)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrCompute(ctx, "long", time.Hour, countingProducer("l", &calls)); err != nil {
		t.Fatal(err)
	}

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	if dropped := c.Sweep(); dropped != 1 {
		t.Fatalf("Sweep dropped %d, want 1", dropped)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d after sweep, want 1", c.Len())
	}
}
