package categorizer

import (
	"context"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
)

const (
	fallbackTitleWords  = 4
	fallbackTitleMaxLen = 30
	fallbackTitle       = "Saved Content"
)

// categoryKeywords maps category-name patterns to the content keywords that
// score for them. A workspace category matches a group when its (lowercased)
// name contains any of the group's patterns.
var categoryKeywords = []struct {
	patterns []string
	keywords []string
}{
	{
		patterns: []string{"development", "dev", "programming", "coding", "software"},
		keywords: []string{"development", "coding", "programming", "software", "app", "code", "git", "github"},
	},
	{
		patterns: []string{"research"},
		keywords: []string{"research", "study", "analysis", "experiment", "investigation", "paper", "academic"},
	},
	{
		patterns: []string{"articles", "blog", "tutorial"},
		keywords: []string{"article", "blog", "post", "tutorial", "guide", "how to", "tips"},
	},
	{
		patterns: []string{"tech", "news", "technology"},
		keywords: []string{"news", "announcement", "release", "update", "tech", "technology"},
	},
	{
		patterns: []string{"ai", "machine learning", "ml"},
		keywords: []string{"ai", "artificial intelligence", "machine learning", "ml", "neural", "gpt", "llm", "model"},
	},
	{
		patterns: []string{"notion", "productivity"},
		keywords: []string{"notion", "productivity", "organize", "database", "workspace"},
	},
}

// KeywordCategorizer scores known categories by keyword hits in the note
// text. It needs no network and never fails, which makes it the terminal
// fallback strategy.
type KeywordCategorizer struct{}

func NewKeywordCategorizer() *KeywordCategorizer { return &KeywordCategorizer{} }

func (c *KeywordCategorizer) Suggest(_ context.Context, req Request) (Suggestion, error) {
	text := strings.ToLower(req.Content) + " " + strings.ToLower(req.Comment)

	var bestMatch string
	bestConfidence := 0.0

	for _, category := range req.KnownCategories {
		categoryLower := strings.ToLower(category)

		// A category named directly in the text beats any keyword score.
		if strings.Contains(text, categoryLower) {
			bestMatch = category
			bestConfidence = 0.9
			break
		}

		for _, group := range categoryKeywords {
			if !matchesAnyPattern(categoryLower, group.patterns) {
				continue
			}
			hits := 0
			for _, kw := range group.keywords {
				if strings.Contains(text, kw) {
					hits++
				}
			}
			if hits == 0 {
				continue
			}
			confidence := 0.5 + float64(hits)*0.1
			if confidence > 0.85 {
				confidence = 0.85
			}
			if confidence > bestConfidence {
				bestMatch = category
				bestConfidence = confidence
			}
		}
	}

	if bestMatch == "" {
		if len(req.KnownCategories) > 0 {
			bestMatch = req.KnownCategories[0]
		} else {
			bestMatch = "General"
		}
		bestConfidence = 0.4
	}

	sugg := Suggestion{
		Category:   bestMatch,
		Title:      deriveTitle(req.Content),
		Confidence: bestConfidence,
		IsNew:      !containsFold(req.KnownCategories, bestMatch),
		Reasoning:  "Generated using keyword matching (AI unavailable)",
	}
	log.Infof("keyword fallback chose category %q (confidence %.2f)", sugg.Category, sugg.Confidence)
	return sugg, nil
}

func matchesAnyPattern(categoryName string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(categoryName, p) {
			return true
		}
	}
	return false
}

// deriveTitle takes the first few words of content, title-cased, bounded to
// fallbackTitleMaxLen with an ellipsis marker.
func deriveTitle(content string) string {
	words := strings.Fields(content)
	if len(words) > fallbackTitleWords {
		words = words[:fallbackTitleWords]
	}
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	title := strings.Join(words, " ")
	if len(title) > fallbackTitleMaxLen {
		title = title[:fallbackTitleMaxLen-3] + "..."
	}
	if title == "" {
		title = fallbackTitle
	}
	return title
}

func titleCaseWord(w string) string {
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
