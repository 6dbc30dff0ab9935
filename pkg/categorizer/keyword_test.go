package categorizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordCategorizer_MatchesDevelopment(t *testing.T) {
	c := NewKeywordCategorizer()

	sugg, err := c.Suggest(context.Background(), Request{
		Content:         "Building a React app",
		KnownCategories: []string{"Development", "Research"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Development", sugg.Category)
	assert.Greater(t, sugg.Confidence, 0.5)
	assert.LessOrEqual(t, sugg.Confidence, 0.85)
	assert.False(t, sugg.IsNew)
}

func TestKeywordCategorizer_DirectNameInText(t *testing.T) {
	c := NewKeywordCategorizer()

	sugg, err := c.Suggest(context.Background(), Request{
		Content:         "Notes from my research reading list",
		KnownCategories: []string{"Research"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Research", sugg.Category)
	assert.Equal(t, 0.9, sugg.Confidence)
}

func TestKeywordCategorizer_MoreHitsRaiseConfidence(t *testing.T) {
	c := NewKeywordCategorizer()

	one, err := c.Suggest(context.Background(), Request{
		Content:         "shipping the app",
		KnownCategories: []string{"Development"},
	})
	require.NoError(t, err)

	three, err := c.Suggest(context.Background(), Request{
		Content:         "pushed code to github, new app build",
		KnownCategories: []string{"Development"},
	})
	require.NoError(t, err)

	assert.Greater(t, three.Confidence, one.Confidence)
}

func TestKeywordCategorizer_NoMatchDefaultsToFirstKnown(t *testing.T) {
	c := NewKeywordCategorizer()

	sugg, err := c.Suggest(context.Background(), Request{
		Content:         "zzz qqq xxx",
		KnownCategories: []string{"Cooking", "Travel"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Cooking", sugg.Category)
	assert.Equal(t, 0.4, sugg.Confidence)
}

func TestKeywordCategorizer_NoKnownCategories(t *testing.T) {
	c := NewKeywordCategorizer()

	sugg, err := c.Suggest(context.Background(), Request{Content: "anything"})
	require.NoError(t, err)

	assert.Equal(t, "General", sugg.Category)
	assert.Equal(t, 0.4, sugg.Confidence)
	assert.True(t, sugg.IsNew)
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Building A React App", deriveTitle("building a react app with hooks"))
	assert.Equal(t, fallbackTitle, deriveTitle("   "))

	long := deriveTitle("supercalifragilistic expialidocious antidisestablishmentarianism notes")
	assert.LessOrEqual(t, len(long), fallbackTitleMaxLen)
	assert.True(t, strings.HasSuffix(long, "..."))
}
