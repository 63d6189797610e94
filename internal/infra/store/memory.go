package store

import (
	"context"
	"fmt"
	"sync"

	"movie-catalog-service/internal/domain"
)

// DefaultQuotaBytes mirrors the usual per-origin browser storage limit.
const DefaultQuotaBytes = 5 * 1024 * 1024

// MemoryKV is an in-process domain.KVStore with an optional byte quota.
// Usage counts len(key)+len(value) for every entry.
type MemoryKV struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
	used  int
}

// NewMemoryKV creates an empty store. quota <= 0 disables the limit.
func NewMemoryKV(quota int) *MemoryKV {
	return &MemoryKV{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

// Get returns a copy of the value, or nil if the key doesn't exist.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

// Set stores value, failing with domain.ErrStorageFull if the quota would be exceeded.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + len(value)
	if old, ok := m.data[key]; ok {
		next -= len(old)
	} else {
		next += len(key)
	}

	if m.quota > 0 && next > m.quota {
		return fmt.Errorf("set %s (%d bytes, quota %d): %w", key, len(value), m.quota, domain.ErrStorageFull)
	}

	m.data[key] = append([]byte{}, value...)
	m.used = next

	return nil
}

// Delete removes key.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}

	return nil
}

// Ping always succeeds.
func (m *MemoryKV) Ping(_ context.Context) error {
	return nil
}

// Used returns the bytes currently counted against the quota.
func (m *MemoryKV) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.used
}
