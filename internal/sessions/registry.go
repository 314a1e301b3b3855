package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/freshcart/internal/cart"
	"github.com/angelmondragon/freshcart/pkg/logger"
)

const (
	defaultIdleTTL       = 2 * time.Hour
	defaultSweepInterval = 5 * time.Minute
	defaultMaxSessions   = 10000
)

type sessionGauge interface {
	SetActiveSessions(n int)
}

// RegistryParams configure the session registry.
type RegistryParams struct {
	Logger        *logger.Logger
	IdleTTL       time.Duration
	SweepInterval time.Duration
	// MaxSessions bounds how many carts are held. At the bound, opening a
	// session evicts the one idle the longest.
	MaxSessions int
	Metrics     sessionGauge
	// Now overrides the clock; tests pin it.
	Now func() time.Time
}

type entry struct {
	mu       sync.Mutex
	ledger   *cart.Ledger
	lastSeen time.Time
}

// Registry owns one cart ledger per shopper session. Each ledger is only
// touched while its entry lock is held, so concurrent requests for the same
// session apply one after the other.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	logg     *logger.Logger
	ttl      time.Duration
	interval time.Duration
	max      int
	metrics  sessionGauge
	now      func() time.Time
}

// NewRegistry builds an empty registry.
func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	interval := params.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	maxSessions := params.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*entry),
		logg:     params.Logger,
		ttl:      ttl,
		interval: interval,
		max:      maxSessions,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

// Create opens a new session with an empty cart and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.makeRoomLocked()
	r.sessions[id] = &entry{ledger: cart.NewLedger(), lastSeen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	r.publish(n)
	return id
}

// Do runs fn against the session's ledger, creating the session on first use.
func (r *Registry) Do(ctx context.Context, sessionID string, fn func(*cart.Ledger)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}

	r.mu.Lock()
	e, ok := r.sessions[sessionID]
	if !ok {
		r.makeRoomLocked()
		e = &entry{ledger: cart.NewLedger()}
		r.sessions[sessionID] = e
	}
	e.lastSeen = r.now()
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		r.publish(n)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ledger)
	return nil
}

// Exists reports whether the session is currently held.
func (r *Registry) Exists(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[sessionID]
	return ok
}

// End discards the session and its cart. Ending an unknown session is a no-op.
func (r *Registry) End(sessionID string) bool {
	r.mu.Lock()
	_, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		r.publish(n)
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL as of now and returns
// how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	removed := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	r.publish(n)
	return removed
}

// Run sweeps idle sessions on a fixed cadence until the context is canceled.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logg.Info(ctx, "session sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			r.sweepOnce(ctx)
		}
	}
}

func (r *Registry) sweepOnce(ctx context.Context) {
	removed := r.Sweep(r.now())
	if removed == 0 {
		return
	}
	sweepCtx := r.logg.WithFields(ctx, map[string]any{
		"event":   "sessions.sweep",
		"evicted": removed,
		"active":  r.Len(),
	})
	r.logg.Info(sweepCtx, "evicted idle cart sessions")
}

// makeRoomLocked evicts the least recently seen session when the registry is
// full. Callers hold r.mu.
func (r *Registry) makeRoomLocked() {
	if len(r.sessions) < r.max {
		return
	}
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range r.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(r.sessions, oldestID)
}

func (r *Registry) publish(n int) {
	if r.metrics == nil {
		return
	}
	r.metrics.SetActiveSessions(n)
}
