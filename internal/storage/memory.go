package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store used by tests and as a fallback when no
// persistent medium is available. Envelopes are built exactly as the sqlite
// backend builds them so round-trip behavior matches.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	now    func() time.Time
	broken bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
		now:  time.Now,
	}
}

// SetClock overrides the envelope timestamp source for tests.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Break makes every subsequent operation fail with ErrUnavailable. Tests
// use this to exercise storage-failure paths.
func (m *MemoryStore) Break(broken bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broken = broken
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.broken {
		return ErrUnavailable
	}
	raw, err := wrap(value, m.now())
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.broken {
		return false, ErrUnavailable
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if _, err := unwrap(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// GetEnvelope implements Store.
func (m *MemoryStore) GetEnvelope(_ context.Context, key string) (*Envelope, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.broken {
		return nil, false, ErrUnavailable
	}
	raw, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	env, err := unwrap(raw, nil)
	if err != nil {
		return nil, false, err
	}
	return env, true, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.broken {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}

// Available implements Store.
func (m *MemoryStore) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.broken
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }
