package workspace

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/haritha1313/smartnotes/internal/models"
	"github.com/haritha1313/smartnotes/internal/ratelimit"
)

const (
	defaultMaxAttempts    = 3
	defaultBaseDelay      = time.Second
	defaultRateLimitExtra = 5 * time.Second
)

// Caller wraps workspace operations with rate limiting and bounded
// exponential-backoff retry. Timeouts and 429 responses are retried, the
// latter with an extra fixed delay; every other error propagates on first
// occurrence, wrapped in a ServiceError.
type Caller struct {
	limiter        *ratelimit.Limiter
	maxAttempts    int
	baseDelay      time.Duration
	rateLimitExtra time.Duration
}

func NewCaller(limiter *ratelimit.Limiter) *Caller {
	return &Caller{
		limiter:        limiter,
		maxAttempts:    defaultMaxAttempts,
		baseDelay:      defaultBaseDelay,
		rateLimitExtra: defaultRateLimitExtra,
	}
}

// NewCallerWithBackoff overrides the retry schedule. Used by tests and by
// callers with quota models that differ from the workspace default.
func NewCallerWithBackoff(limiter *ratelimit.Limiter, maxAttempts int, baseDelay, rateLimitExtra time.Duration) *Caller {
	c := NewCaller(limiter)
	if maxAttempts > 0 {
		c.maxAttempts = maxAttempts
	}
	if baseDelay > 0 {
		c.baseDelay = baseDelay
	}
	if rateLimitExtra >= 0 {
		c.rateLimitExtra = rateLimitExtra
	}
	return c
}

// Execute runs fn, acquiring a rate-limit permit before every attempt.
// Returns nil on success, a ServiceError after exhausting retries or on the
// first non-retryable failure, and the context error when ctx dies while
// waiting.
func (c *Caller) Execute(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error
	rateLimited := false

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if err := c.limiter.Acquire(ctx); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		switch {
		case isRateLimited(err):
			rateLimited = true
		case isTimeout(err) && ctx.Err() == nil:
			rateLimited = false
		default:
			// Non-retryable; surface immediately.
			return models.NewServiceError(op, err)
		}

		if attempt == c.maxAttempts-1 {
			break
		}

		delay := c.baseDelay * (1 << attempt)
		if rateLimited {
			delay += c.rateLimitExtra
			log.Warnf("workspace %s rate limited, retrying in %s (attempt %d)", op, delay, attempt+1)
		} else {
			log.Warnf("workspace %s timed out, retrying in %s (attempt %d)", op, delay, attempt+1)
		}
		if err := sleepContext(ctx, delay); err != nil {
			return err
		}
	}

	if rateLimited {
		return models.NewServiceError(op, fmt.Errorf("%w: %v", models.ErrRateLimitBackoff, lastErr))
	}
	return models.NewServiceError(op, lastErr)
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
