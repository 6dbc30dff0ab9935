package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_SpacesPermits(t *testing.T) {
	// 50 permits/s keeps the test fast while still measurable.
	l := New(50)
	ctx := context.Background()

	const n = 5
	start := time.Now()
	for i := 0; i < n; i++ {
		require.NoError(t, l.Acquire(ctx))
	}
	span := time.Since(start)

	assert.GreaterOrEqual(t, span, time.Duration(n-1)*l.Interval(),
		"span from first to last permit must cover (n-1) intervals")
}

func TestLimiter_FirstPermitImmediate(t *testing.T) {
	l := New(1) // 1s interval would be painful if the first acquire slept
	start := time.Now()
	require.NoError(t, l.Acquire(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_ConcurrentCallers(t *testing.T) {
	l := New(100)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Acquire(ctx)
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, time.Since(start), time.Duration(n-1)*l.Interval())
}

func TestLimiter_ContextCancelled(t *testing.T) {
	l := New(0.5) // 2s interval
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_DefaultRate(t *testing.T) {
	l := New(0)
	rps := float64(DefaultRequestsPerSecond)
	assert.Equal(t, time.Duration(float64(time.Second)/rps), l.Interval())
}
