// Package abuse guards unauthenticated submissions with a bot challenge and a
// process-local sliding-window rate limiter. Both are best effort: state is not
// shared between instances and is lost on restart.
package abuse

import (
	"sync"
	"time"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

const (
	DefaultWindow      = 60 * time.Second
	DefaultMaxRequests = 5
)

// Limiter bounds how often a key may be admitted within a trailing window.
type Limiter interface {
	Check(key string, window time.Duration, max int) error
}

// SlidingWindow is a sliding-window log limiter: it keeps the raw timestamps
// of admitted requests per key.
type SlidingWindow struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	now     func() time.Time
}

func NewSlidingWindow() *SlidingWindow {
	return &SlidingWindow{
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the clock for testing.
func (l *SlidingWindow) WithClock(now func() time.Time) *SlidingWindow {
	l.now = now
	return l
}

var (
	defaultLimiter     *SlidingWindow
	defaultLimiterOnce sync.Once
)

// Default returns the process-wide limiter, creating it on first use.
func Default() *SlidingWindow {
	defaultLimiterOnce.Do(func() {
		defaultLimiter = NewSlidingWindow()
	})
	return defaultLimiter
}

// Check fails with a *domain.RetryAfterError (wrapping ErrTooManyRequests)
// when key already has max admitted requests in [now-window, now]. The error
// carries the wait until the oldest of those leaves the window. Otherwise it
// records now and returns nil. Rejected attempts are not recorded.
func (l *SlidingWindow) Check(key string, window time.Duration, max int) error {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMaxRequests
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	bucket := l.buckets[key]
	kept := bucket[:0]
	for _, ts := range bucket {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= max {
		l.buckets[key] = kept
		return &domain.RetryAfterError{After: kept[len(kept)-max].Add(window).Sub(now)}
	}

	l.buckets[key] = append(kept, now)
	return nil
}
