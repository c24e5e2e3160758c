package service

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is the single process OrderLocker used when no redis is configured.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]time.Time)}
}

func (m *MemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if expires, ok := m.held[key]; ok && now.Before(expires) {
		return nil, false, nil
	}
	expires := now.Add(ttl)
	m.held[key] = expires

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// a lock that expired and was re-acquired belongs to someone else.
		if m.held[key] == expires {
			delete(m.held, key)
		}
	}, true, nil
}
