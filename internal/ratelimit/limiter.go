// Package ratelimit throttles outbound calls to the workspace API, which
// allows roughly 3 requests per second per integration.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const DefaultRequestsPerSecond = 3.0

// Limiter spaces permits at least minInterval apart. One shared instance per
// external API target.
type Limiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastRequest time.Time
}

// New creates a limiter allowing at most requestsPerSecond steady-state
// throughput. Non-positive values fall back to the default.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	return &Limiter{
		minInterval: time.Duration(float64(time.Second) / requestsPerSecond),
	}
}

// Acquire blocks until it is safe to issue the next call. Permits are handed
// out in the mutex's FIFO-ish order; no permit is ever granted early. The only
// error case is a cancelled context, observed while waiting out the interval.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	elapsed := time.Since(l.lastRequest)
	if elapsed < l.minInterval {
		wait := l.minInterval - elapsed
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	l.lastRequest = time.Now()
	return nil
}

// Interval exposes the configured minimum spacing between permits.
func (l *Limiter) Interval() time.Duration { return l.minInterval }
