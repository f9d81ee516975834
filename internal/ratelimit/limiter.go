package ratelimit

import (
	"sync"
	"time"

	"github.com/dropbox/godropbox/time2"
)

// pruneThreshold bounds how large the window map may grow before expired
// entries are swept out during Allow.
const pruneThreshold = 4096

type window struct {
	count int
	start time.Time
}

// Limiter is a fixed-window request counter keyed by caller identity.
// Check-and-increment happens under one mutex, so two concurrent requests
// from the same identity can never both observe the same pre-increment
// count.
type Limiter struct {
	mu      sync.Mutex
	clock   time2.Clock
	limit   int
	window  time.Duration
	windows map[string]*window
}

func New(clock time2.Clock, limit int, windowDuration time.Duration) *Limiter {
	return &Limiter{
		clock:   clock,
		limit:   limit,
		window:  windowDuration,
		windows: make(map[string]*window),
	}
}

// Allow records a request for the given identity and reports whether it is
// within quota. On deny, retryAfter is the time remaining until the
// identity's current window expires.
func (l *Limiter) Allow(identity string) (allowed bool, retryAfter time.Duration) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identity]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[identity] = &window{count: 1, start: now}
		l.pruneLocked(now)
		return true, 0
	}

	w.count++
	if w.count <= l.limit {
		return true, 0
	}

	return false, l.window - now.Sub(w.start)
}

// pruneLocked drops expired windows once the map has grown past the
// threshold. Callers must hold l.mu.
func (l *Limiter) pruneLocked(now time.Time) {
	if len(l.windows) < pruneThreshold {
		return
	}

	for identity, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, identity)
		}
	}
}
