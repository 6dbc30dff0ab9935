package services

import (
	"context"
	"errors"

	"github.com/haritha1313/smartnotes/internal/workspace"
)

// WorkspaceClientFactory builds a workspace client for a per-request token.
// Requests carry their own integration tokens, so clients cannot be shared
// process-wide the way the rate limiter is.
type WorkspaceClientFactory func(token string) (workspace.Client, error)

// DefaultWorkspaceFactory builds real Notion clients.
func DefaultWorkspaceFactory(token string) (workspace.Client, error) {
	return workspace.NewNotionClient(workspace.NotionClientOptions{Token: token})
}

// NoopGenerator is used when no AI provider is configured; it always reports
// unavailable so the engine goes straight to the keyword fallback.
type NoopGenerator struct{}

func (NoopGenerator) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	return "", errors.New("no text generator configured")
}

func (NoopGenerator) IsAvailable(ctx context.Context) bool { return false }
