package codestore

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how often Put scans for expired entries.
const sweepEvery = time.Minute

// MemoryStore is a process-local Store for development and tests.
type MemoryStore struct {
	mu        sync.Mutex
	items     map[string][]byte
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte), now: time.Now}
}

// WithClock replaces the time source. Tests use it to step past expiry.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.now()
	raw, err := seal(value, ttl, now)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if now.Sub(m.lastSweep) >= sweepEvery {
		m.sweepLocked(now)
	}
	m.items[key] = raw
	return nil
}

// Get checks expiry and evicts under the same lock, so a concurrent Put of
// a fresh entry is never dropped.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	value, err := open(raw, now)
	if err == ErrNotFound {
		delete(m.items, key)
	}
	return value, err
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included until swept.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *MemoryStore) sweepLocked(now time.Time) {
	for key, raw := range m.items {
		if _, err := open(raw, now); err != nil {
			delete(m.items, key)
		}
	}
	m.lastSweep = now
}
