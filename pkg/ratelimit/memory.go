package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Counter increments a fixed-window counter, starting the window on the first hit.
type Counter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

const pruneEvery = 1024

type window struct {
	count   int64
	expires time.Time
}

// MemoryCounter keeps fixed-window counters in process memory. It is the
// default when no shared Redis is configured.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
	calls   int
}

// NewMemoryCounter builds an empty counter. A nil clock uses time.Now.
func NewMemoryCounter(now func() time.Time) *MemoryCounter {
	if now == nil {
		now = time.Now
	}
	return &MemoryCounter{windows: make(map[string]*window), now: now}
}

// IncrWithTTL implements Counter.
func (m *MemoryCounter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.calls%pruneEvery == 0 {
		m.pruneLocked(now)
	}

	w, ok := m.windows[key]
	if !ok || (!w.expires.IsZero() && !now.Before(w.expires)) {
		w = &window{}
		if ttl > 0 {
			w.expires = now.Add(ttl)
		}
		m.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// Len returns the number of tracked keys.
func (m *MemoryCounter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

func (m *MemoryCounter) pruneLocked(now time.Time) {
	for key, w := range m.windows {
		if !w.expires.IsZero() && !now.Before(w.expires) {
			delete(m.windows, key)
		}
	}
}
