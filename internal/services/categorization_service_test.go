package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritha1313/smartnotes/internal/cache"
	"github.com/haritha1313/smartnotes/internal/models"
	"github.com/haritha1313/smartnotes/pkg/categorizer"
)

// countingStrategy returns a canned suggestion and counts invocations.
type countingStrategy struct {
	sugg  categorizer.Suggestion
	err   error
	calls int
}

func (s *countingStrategy) Suggest(ctx context.Context, req categorizer.Request) (categorizer.Suggestion, error) {
	s.calls++
	if s.err != nil {
		return categorizer.Suggestion{}, s.err
	}
	return s.sugg, nil
}

func newEngine(primary categorizer.Strategy) *CategorizationService {
	return NewCategorizationService(primary, nil, cache.New[categorizer.Suggestion]())
}

func TestCategorizationService_EmptyContent(t *testing.T) {
	engine := newEngine(nil)
	_, err := engine.Suggest(context.Background(), "   ", "", nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCategorizationService_PrimaryWins(t *testing.T) {
	primary := &countingStrategy{sugg: categorizer.Suggestion{Category: "Research", Confidence: 0.9}}
	engine := newEngine(primary)

	sugg, err := engine.Suggest(context.Background(), "LLM paper notes", "", []string{"Research"})
	require.NoError(t, err)
	assert.Equal(t, "Research", sugg.Category)
	assert.Equal(t, 1, primary.calls)
}

func TestCategorizationService_CacheDeterminism(t *testing.T) {
	primary := &countingStrategy{sugg: categorizer.Suggestion{Category: "Research", Title: "T", Confidence: 0.9}}
	engine := newEngine(primary)
	ctx := context.Background()

	first, err := engine.Suggest(ctx, "LLM paper notes", "read later", []string{"Research", "Development"})
	require.NoError(t, err)
	second, err := engine.Suggest(ctx, "LLM paper notes", "read later", []string{"Research", "Development"})
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical requests within the TTL return the identical suggestion")
	assert.Equal(t, 1, primary.calls, "cache hit must not invoke a strategy")
}

func TestCategorizationService_CacheExpiry(t *testing.T) {
	primary := &countingStrategy{sugg: categorizer.Suggestion{Category: "Research"}}
	engine := newEngine(primary)
	engine.ttl = 10 * time.Millisecond
	ctx := context.Background()

	_, err := engine.Suggest(ctx, "content", "", nil)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = engine.Suggest(ctx, "content", "", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, primary.calls)
}

func TestCategorizationService_FallbackOnPrimaryError(t *testing.T) {
	primary := &countingStrategy{err: errors.New("model unavailable")}
	engine := newEngine(primary)

	sugg, err := engine.Suggest(context.Background(), "Building a React app", "", []string{"Development", "Research"})
	require.NoError(t, err, "internal failures never surface")

	assert.Equal(t, "Development", sugg.Category)
	assert.Greater(t, sugg.Confidence, 0.5)
	assert.LessOrEqual(t, sugg.Confidence, 0.85)
	assert.False(t, sugg.IsNew)
}

func TestCategorizationService_NoPrimaryUsesFallback(t *testing.T) {
	engine := newEngine(nil)

	sugg, err := engine.Suggest(context.Background(), "random musings", "", []string{"Journal"})
	require.NoError(t, err)
	assert.Equal(t, "Journal", sugg.Category)
}

func TestCategorizationService_FallbackResultCached(t *testing.T) {
	primary := &countingStrategy{err: errors.New("down")}
	engine := newEngine(primary)
	ctx := context.Background()

	first, err := engine.Suggest(ctx, "Building a React app", "", []string{"Development"})
	require.NoError(t, err)
	second, err := engine.Suggest(ctx, "Building a React app", "", []string{"Development"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, primary.calls, "cached fallback result must short-circuit the primary retry")
}
