package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New[[]string]()
	c.Set("db1", []string{"Research", "Development"}, time.Minute)

	got, ok := c.Get("db1")
	require.True(t, ok)
	assert.Equal(t, []string{"Research", "Development"}, got)
}

func TestCache_MissingKey(t *testing.T) {
	c := New[string]()
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCache_ExpiryEvictsLazily(t *testing.T) {
	c := New[int]()
	c.Set("k", 42, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok, "entry past its TTL must read as absent")
	assert.Equal(t, 0, c.Len(), "expired entry must be removed on read")
}

func TestCache_Overwrite(t *testing.T) {
	c := New[int]()
	c.Set("k", 1, time.Minute)
	c.Set("k", 2, time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_InvalidateAndClear(t *testing.T) {
	c := New[int]()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Sweep(t *testing.T) {
	c := New[int]()
	c.Set("old", 1, 5*time.Millisecond)
	c.Set("fresh", 2, time.Minute)
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}
