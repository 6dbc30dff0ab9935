// Package workspace talks to the external workspace document store (Notion).
// All calls are expected to go through a Caller, which owns rate limiting and
// retries; the raw client issues exactly one HTTP request per operation.
package workspace

import (
	"context"
)

// FieldOption is one allowed value of a select-typed field.
type FieldOption struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FieldDescriptor describes a single database property.
type FieldDescriptor struct {
	Type    string
	Options []FieldOption // populated for select fields
}

// Schema maps field name to its descriptor.
type Schema map[string]FieldDescriptor

// Client is the workspace-store collaborator surface the orchestration core
// depends on.
type Client interface {
	// ReadSchema retrieves the database's field descriptors.
	ReadSchema(ctx context.Context, databaseID string) (Schema, error)
	// CreateRecord creates a record from the given field payload and returns
	// the external record id.
	CreateRecord(ctx context.Context, databaseID string, fields map[string]any) (string, error)
	// TestConnection reports whether the integration token is usable.
	TestConnection(ctx context.Context) bool
}
