// PelisMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pelismatch

package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeClock lets TTL tests advance time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[int, string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int, string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add(550, "Fight Club")
	c.Add(680, "Pulp Fiction")
	c.Add(13, "Forrest Gump")

	for _, id := range []int{550, 680, 13} {
		if _, ok := c.Get(id); !ok {
			t.Errorf("expected to find %d", id)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	c.Add(550, "Fight Club (1999)")
	if v, _ := c.Get(550); v != "Fight Club (1999)" {
		t.Errorf("updated value = %q", v)
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c")

	// touch 1 so 2 becomes least recently used
	c.Get(1)
	c.Add(4, "d")

	if c.Contains(2) {
		t.Error("expected 2 to be evicted")
	}
	for _, id := range []int{1, 3, 4} {
		if !c.Contains(id) {
			t.Errorf("expected %d to be present", id)
		}
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add(1, "a")
	if _, ok := c.Get(1); !ok {
		t.Fatal("expected entry before expiry")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get(1); ok {
		t.Error("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on Get, Len() = %d", c.Len())
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add(1, "a")
	c.Add(2, "b")
	clock.Advance(2 * time.Minute)
	c.Add(3, "c")

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if !c.Contains(3) {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add(1, "a")
	c.Add(2, "b")

	if !c.Remove(1) {
		t.Error("Remove(1) = false, want true")
	}
	if c.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Add(5, "e")
	if !c.Contains(5) {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add(1, "a")
	c.Get(1)
	c.Get(2)

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (1, 1, 1)", hits, misses, size)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("defaults not applied: capacity=%d ttl=%v", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int, int](100, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(i%150, g)
				c.Get(i % 150)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
