package categorizer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/haritha1313/smartnotes/internal/util"
)

const (
	maxPromptContentLen = 1000
	maxCategoryLen      = 50

	systemPrompt = "You are a helpful assistant that categorizes content accurately and concisely. Follow the format exactly."
)

var (
	titleRe      = regexp.MustCompile(`(?i)Title:\s*(.+)`)
	categoryRe   = regexp.MustCompile(`(?i)Category:\s*(.+)`)
	confidenceRe = regexp.MustCompile(`(?i)Confidence:\s*([\d.]+)`)
	reasoningRe  = regexp.MustCompile(`(?i)Reasoning:\s*(.+)`)

	// Characters permitted in a category name besides word chars and spaces.
	categoryCharsRe = regexp.MustCompile(`[^\w\s&.-]`)
)

// LLMCategorizer asks a text-generation model for a suggestion. The model
// response is free text with four labeled lines; anything that cannot be
// parsed fails the whole attempt so the engine can fall back.
type LLMCategorizer struct {
	gen TextGenerator
}

func NewLLMCategorizer(gen TextGenerator) *LLMCategorizer {
	return &LLMCategorizer{gen: gen}
}

func (c *LLMCategorizer) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	if c.gen == nil {
		return Suggestion{}, fmt.Errorf("llm categorizer has no text generator")
	}
	if !c.gen.IsAvailable(ctx) {
		return Suggestion{}, fmt.Errorf("text generator unavailable")
	}

	prompt := buildPrompt(req)
	raw, err := c.gen.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate suggestion: %w", err)
	}

	sugg, err := parseResponse(raw)
	if err != nil {
		log.Warnf("unparsable model response: %v", err)
		return Suggestion{}, err
	}

	sugg.Category = reconcile(sugg.Category, sugg.Confidence, req.KnownCategories)
	sanitize(&sugg, req.KnownCategories)

	log.Infof("model suggested category %q (confidence %.2f, new=%v)",
		sugg.Category, sugg.Confidence, sugg.IsNew)
	return sugg, nil
}

func buildPrompt(req Request) string {
	content := util.TruncateAtSentence(req.Content, maxPromptContentLen)

	existing := "None"
	if len(req.KnownCategories) > 0 {
		existing = strings.Join(req.KnownCategories, ", ")
	}

	return fmt.Sprintf(`You should STRONGLY PREFER existing categories, but can create new ones if content truly doesn't fit.

Content: %s

User Comment: %s

EXISTING CATEGORIES (prefer these): %s

DECISION PROCESS:
1. FIRST: Try to match content to existing categories (strongly preferred)
2. ONLY IF no existing category fits well: create a new descriptive category
3. Use high confidence (0.8+) for existing categories that fit
4. Use lower confidence (0.6-0.7) when creating new categories

CREATE NEW CATEGORY ONLY IF:
- Content is about a specialized domain not covered by existing categories
- New category would be genuinely useful for organizing similar future content
- Existing categories would be a poor fit (confidence < 0.5)

Respond EXACTLY in this format:
Title: [3-5 word title summarizing the content]
Category: [existing category name OR new descriptive category]
Confidence: [0.0-1.0, higher for existing categories]
Reasoning: [why you chose existing category OR why new category was needed]`,
		content, req.Comment, existing)
}

// parseResponse extracts the four labeled fields. Title, category and
// confidence are required; reasoning is optional.
func parseResponse(raw string) (Suggestion, error) {
	var sugg Suggestion

	m := titleRe.FindStringSubmatch(raw)
	if m == nil {
		return sugg, fmt.Errorf("response missing Title field")
	}
	sugg.Title = strings.TrimSpace(m[1])

	m = categoryRe.FindStringSubmatch(raw)
	if m == nil {
		return sugg, fmt.Errorf("response missing Category field")
	}
	sugg.Category = strings.TrimSpace(m[1])

	m = confidenceRe.FindStringSubmatch(raw)
	if m == nil {
		return sugg, fmt.Errorf("response missing Confidence field")
	}
	conf, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return sugg, fmt.Errorf("unparsable confidence %q", m[1])
	}
	sugg.Confidence = clamp01(conf)

	if m = reasoningRe.FindStringSubmatch(raw); m != nil {
		sugg.Reasoning = strings.TrimSpace(m[1])
	}
	return sugg, nil
}

// reconcile force-matches the model's category onto an existing one. Free-form
// model naming drifts from the canonical workspace set; without this,
// near-duplicates like "AI Research" vs "Research" proliferate. Keyword
// matching only applies above 0.7 confidence; exact matches always apply.
func reconcile(category string, confidence float64, known []string) string {
	categoryLower := strings.ToLower(category)

	for _, existing := range known {
		if strings.ToLower(existing) == categoryLower {
			return existing
		}
	}

	if confidence <= 0.7 {
		return category
	}

	for _, existing := range known {
		existingLower := strings.ToLower(existing)
		switch {
		case containsAny(categoryLower, "research", "study", "analysis") &&
			strings.Contains(existingLower, "research"):
			log.Infof("reconciled category %q onto existing %q (research)", category, existing)
			return existing
		case containsAny(categoryLower, "development", "programming", "coding") &&
			strings.Contains(existingLower, "development"):
			log.Infof("reconciled category %q onto existing %q (development)", category, existing)
			return existing
		case containsAny(categoryLower, "article", "blog", "tutorial", "guide") &&
			strings.Contains(existingLower, "article"):
			log.Infof("reconciled category %q onto existing %q (article)", category, existing)
			return existing
		}
	}
	return category
}

// sanitize cleans up names and recomputes IsNew against the known set.
func sanitize(sugg *Suggestion, known []string) {
	sugg.Title = util.StripQuotes(sugg.Title)

	category := util.StripQuotes(sugg.Category)
	category = categoryCharsRe.ReplaceAllString(category, "")
	category = strings.Join(strings.Fields(category), " ")
	sugg.Category = category

	sugg.IsNew = !containsFold(known, category)

	if category == "" || len(category) > maxCategoryLen {
		sugg.Category = "General"
		sugg.IsNew = false
		sugg.Confidence = 0.3
	}
}

func containsFold(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
