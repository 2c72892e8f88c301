// Package ratelimit implements a per-(user, message type) debounce: at most
// one event of a given type per user is admitted within a rolling window.
// A periodic sweep evicts idle entries to bound memory for abandoned users;
// it is a best-effort memory bound, not a correctness mechanism.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gastobot/core/logger"
)

const (
	// DefaultWindow is the debounce window.
	DefaultWindow = 5 * time.Second
	// DefaultIdleTTL is how long an entry may sit untouched before eviction.
	DefaultIdleTTL = 30 * time.Second
	// DefaultSweepInterval is how often the sweep runs.
	DefaultSweepInterval = 60 * time.Second
)

type entry struct {
	lastSeen time.Time
	count    int
}

// Limiter tracks debounce entries keyed by "userID:messageType".
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	window  time.Duration
	idleTTL time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// New builds a limiter. Non-positive durations fall back to the defaults.
func New(window, idleTTL time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// ShouldLimit reports whether an event of messageType from userID must be
// suppressed. Every call refreshes the entry's timestamp, so a user who
// keeps sending inside the window keeps the entry alive.
func (l *Limiter) ShouldLimit(userID int64, messageType string) bool {
	key := fmt.Sprintf("%d:%s", userID, messageType)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		l.entries[key] = &entry{lastSeen: now, count: 1}
		return false
	}

	if now.Sub(e.lastSeen) > l.window {
		e.lastSeen = now
		e.count = 1
		return false
	}

	if e.count >= 1 {
		e.lastSeen = now
		return true
	}

	// Not reachable while fresh entries start at count 1; kept so the
	// admit semantics stay "one event per window" if that initial value
	// ever changes.
	e.count++
	e.lastSeen = now
	return false
}

// Len returns the number of live entries.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// SweepOnce evicts entries idle longer than the TTL and returns the count.
func (l *Limiter) SweepOnce() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.entries, key)
			evicted++
		}
	}
	return evicted
}

// Run sweeps on the given interval until the context is cancelled.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := l.SweepOnce(); evicted > 0 {
				logger.Debug(ctx, "limiter", "sweep",
					slog.Int("evicted", evicted),
					slog.Int("entries", l.Len()),
				)
			}
		}
	}
}
