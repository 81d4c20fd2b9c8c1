package cache

import (
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory()

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	c.Set("counters", 42)
	value, ok := c.Get("counters")
	if !ok || value.(int) != 42 {
		t.Fatalf("expected 42, got %v (ok=%v)", value, ok)
	}
}

func TestMemoryFreshness(t *testing.T) {
	c := NewMemory()
	current := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("snapshot", "v1")
	if !c.IsFresh("snapshot", 5*time.Minute) {
		t.Fatal("value should be fresh immediately after Set")
	}

	current = current.Add(5 * time.Minute)
	if c.IsFresh("snapshot", 5*time.Minute) {
		t.Fatal("value at exactly the TTL is stale")
	}

	if c.IsFresh("missing", time.Hour) {
		t.Fatal("missing key can never be fresh")
	}
}

func TestMemoryDelete(t *testing.T) {
	c := NewMemory()
	c.Set("k", 1)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after delete")
	}
}
