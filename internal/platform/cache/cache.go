package cache

import (
	"sync"
	"time"
)

// Cache is a TTL-aware snapshot store. Callers decide per read how stale a
// value they will tolerate; Set always overwrites and refreshes the clock.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	IsFresh(key string, ttl time.Duration) bool
}

type entry struct {
	value    any
	storedAt time.Time
}

type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: map[string]entry{}, now: time.Now}
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, storedAt: m.now()}
}

func (m *Memory) IsFresh(key string, ttl time.Duration) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return false
	}
	return m.now().Sub(e.storedAt) < ttl
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
