// Package categorizer produces category and title suggestions for captured
// notes. Two strategies exist: an LLM-backed one and a keyword fallback that
// never needs the network.
package categorizer

import "context"

// Request holds the note text plus the workspace's known category names.
type Request struct {
	Content         string
	Comment         string
	KnownCategories []string
}

// Suggestion is the result of one categorization call. Immutable once built.
type Suggestion struct {
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	IsNew      bool    `json:"is_new"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Strategy categorizes content.
type Strategy interface {
	Suggest(ctx context.Context, req Request) (Suggestion, error)
}

// TextGenerator is the AI collaborator surface the LLM strategy depends on.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
	IsAvailable(ctx context.Context) bool
}
