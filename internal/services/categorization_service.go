package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/haritha1313/smartnotes/internal/cache"
	"github.com/haritha1313/smartnotes/internal/models"
	"github.com/haritha1313/smartnotes/pkg/categorizer"
)

// SuggestionCacheTTL bounds how long an identical request keeps returning the
// same suggestion without a fresh model call.
const SuggestionCacheTTL = 30 * time.Minute

// CategorizationService runs the primary (AI) strategy with a keyword
// fallback. Apart from empty input it never fails outward: every internal
// failure degrades to the fallback so the caller always gets a suggestion.
type CategorizationService struct {
	primary     categorizer.Strategy
	fallback    categorizer.Strategy
	suggestions *cache.Cache[categorizer.Suggestion]
	ttl         time.Duration
}

func NewCategorizationService(primary, fallback categorizer.Strategy, suggestions *cache.Cache[categorizer.Suggestion]) *CategorizationService {
	if fallback == nil {
		fallback = categorizer.NewKeywordCategorizer()
	}
	return &CategorizationService{
		primary:     primary,
		fallback:    fallback,
		suggestions: suggestions,
		ttl:         SuggestionCacheTTL,
	}
}

// Suggest produces a category/title suggestion for the given content. Repeated
// identical requests within the TTL window return the cached suggestion
// unchanged, bypassing both strategies.
func (s *CategorizationService) Suggest(ctx context.Context, content, comment string, knownCategories []string) (categorizer.Suggestion, error) {
	if strings.TrimSpace(content) == "" {
		return categorizer.Suggestion{}, fmt.Errorf("%w: content is empty", models.ErrInvalidInput)
	}

	key := categorizer.Fingerprint(content, comment, knownCategories)
	if cached, ok := s.suggestions.Get(key); ok {
		log.Infof("using cached suggestion: %s (confidence %.2f)", cached.Category, cached.Confidence)
		return cached, nil
	}

	req := categorizer.Request{
		Content:         content,
		Comment:         comment,
		KnownCategories: knownCategories,
	}

	var sugg categorizer.Suggestion
	produced := false
	if s.primary != nil {
		var err error
		sugg, err = s.primary.Suggest(ctx, req)
		if err != nil {
			log.Warnf("primary categorization failed, using keyword fallback: %v", err)
		} else {
			produced = true
		}
	}
	if !produced {
		var err error
		sugg, err = s.fallback.Suggest(ctx, req)
		if err != nil {
			// The keyword strategy has no failure modes; guard anyway.
			return categorizer.Suggestion{}, err
		}
	}

	s.suggestions.Set(key, sugg, s.ttl)
	log.Infof("cached new suggestion %q for %s", sugg.Category, s.ttl)
	return sugg, nil
}
