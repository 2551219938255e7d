// Package ratelimit caps coach requests per user over a fixed window. The
// check-then-increment sequence is a real race on a multi-threaded runtime,
// so every implementation here is safe for concurrent handlers.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultLimit  = 15
	DefaultWindow = 60 * time.Second

	// sweepThreshold bounds key growth: once the map holds this many
	// entries, expired windows are purged on the next check.
	sweepThreshold = 1024
)

type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

type Limiter interface {
	Check(ctx context.Context, key string) (Decision, error)
}

type windowEntry struct {
	count    int
	resetsAt time.Time
}

// FixedWindow is the in-process limiter.
type FixedWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	data   map[string]windowEntry
	now    func() time.Time
}

func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &FixedWindow{
		limit:  limit,
		window: window,
		data:   make(map[string]windowEntry),
		now:    time.Now,
	}
}

func (l *FixedWindow) Check(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.data) >= sweepThreshold {
		l.sweepLocked(now)
	}

	e, ok := l.data[key]
	if !ok || now.After(e.resetsAt) {
		l.data[key] = windowEntry{count: 1, resetsAt: now.Add(l.window)}
		return Decision{Allowed: true, Remaining: l.limit - 1, ResetIn: l.window}, nil
	}

	if e.count >= l.limit {
		// Denied requests do not push the counter further.
		return Decision{Allowed: false, Remaining: 0, ResetIn: e.resetsAt.Sub(now)}, nil
	}

	e.count++
	l.data[key] = e
	return Decision{Allowed: true, Remaining: l.limit - e.count, ResetIn: e.resetsAt.Sub(now)}, nil
}

func (l *FixedWindow) sweepLocked(now time.Time) {
	for key, e := range l.data {
		if now.After(e.resetsAt) {
			delete(l.data, key)
		}
	}
}
