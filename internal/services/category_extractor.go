package services

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/haritha1313/smartnotes/internal/cache"
	"github.com/haritha1313/smartnotes/internal/workspace"
)

const (
	categoryFieldName   = "Category"
	CategoryCacheTTL    = 10 * time.Minute
	defaultCategoryName = "General"
)

// CategoryExtractor reads the set of known categories from a workspace
// database's select field, caching results per database id.
type CategoryExtractor struct {
	caller     *workspace.Caller
	newClient  WorkspaceClientFactory
	categories *cache.Cache[[]string]
	ttl        time.Duration
}

func NewCategoryExtractor(caller *workspace.Caller, factory WorkspaceClientFactory, categories *cache.Cache[[]string]) *CategoryExtractor {
	if factory == nil {
		factory = DefaultWorkspaceFactory
	}
	return &CategoryExtractor{
		caller:     caller,
		newClient:  factory,
		categories: categories,
		ttl:        CategoryCacheTTL,
	}
}

// Fetch returns the database's category names. With useCache it serves a
// non-expired cached set; otherwise it reads the schema through the retrying
// client. A missing or non-select Category field is a degraded-but-valid
// outcome yielding ["General"] without caching. External failures (not-found,
// permission denied, exhausted retries) surface as ServiceError.
func (e *CategoryExtractor) Fetch(ctx context.Context, token, databaseID string, useCache bool) ([]string, error) {
	if useCache {
		if cached, ok := e.categories.Get(databaseID); ok {
			log.Debugf("using cached categories for database %s", databaseID)
			return cached, nil
		}
	}

	client, err := e.newClient(token)
	if err != nil {
		return nil, err
	}

	log.Infof("fetching fresh categories from database %s", databaseID)
	var schema workspace.Schema
	err = e.caller.Execute(ctx, "readSchema", func(ctx context.Context) error {
		var err error
		schema, err = client.ReadSchema(ctx, databaseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	field, ok := schema[categoryFieldName]
	if !ok {
		log.Warnf("no %s field found in database %s", categoryFieldName, databaseID)
		return []string{defaultCategoryName}, nil
	}
	if field.Type != "select" {
		log.Warnf("%s field in database %s is %q, not select", categoryFieldName, databaseID, field.Type)
		return []string{defaultCategoryName}, nil
	}

	var categories []string
	for _, option := range field.Options {
		if name := strings.TrimSpace(option.Name); name != "" {
			categories = append(categories, name)
		}
	}
	if len(categories) == 0 {
		categories = []string{defaultCategoryName}
	}

	e.categories.Set(databaseID, categories, e.ttl)
	log.Infof("extracted %d categories from database %s", len(categories), databaseID)
	return categories, nil
}

// Invalidate forces the next Fetch for databaseID to bypass the cache.
func (e *CategoryExtractor) Invalidate(databaseID string) {
	e.categories.Invalidate(databaseID)
	log.Infof("cleared category cache for database %s", databaseID)
}

// InvalidateAll drops every cached category set.
func (e *CategoryExtractor) InvalidateAll() {
	e.categories.Clear()
	log.Info("cleared all category cache")
}

// Warm populates the cache with an uncached fetch. Failures are reported as
// false, never propagated.
func (e *CategoryExtractor) Warm(ctx context.Context, token, databaseID string) bool {
	if _, err := e.Fetch(ctx, token, databaseID, false); err != nil {
		log.Warnf("failed to warm category cache for database %s: %v", databaseID, err)
		return false
	}
	log.Infof("warmed category cache for database %s", databaseID)
	return true
}
