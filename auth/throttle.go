package auth

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle keeps one token bucket per key (client address for login attempts).
type Throttle struct {
	limit rate.Limit
	burst int

	mutex    sync.Mutex
	limiters map[string]*limiterEntry
}

func NewThrottle(limit rate.Limit, burst int) *Throttle {
	return &Throttle{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*limiterEntry),
	}
}

func (t *Throttle) Allow(key string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	entry, ok := t.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Forget drops buckets idle for longer than maxIdle.
func (t *Throttle) Forget(maxIdle time.Duration) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	for key, entry := range t.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(t.limiters, key)
		}
	}
}

// Len reports how many keys currently hold a bucket.
func (t *Throttle) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.limiters)
}

// idleTimeout is how long a bucket takes to refill completely. A bucket idle
// that long behaves exactly like a fresh one.
func (t *Throttle) idleTimeout() time.Duration {
	if t.limit == rate.Inf {
		return 0
	}
	if t.limit <= 0 {
		return time.Hour
	}
	seconds := float64(t.burst) / float64(t.limit)
	if seconds*float64(time.Second) > math.MaxInt64/2 {
		return time.Hour
	}
	return time.Duration(seconds * float64(time.Second))
}

// Run prunes full buckets every interval until ctx is done.
func (t *Throttle) Run(ctx context.Context, interval time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			t.Forget(t.idleTimeout())
		}
	}
}
