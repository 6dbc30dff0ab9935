package store

import (
	"context"

	"github.com/haritha1313/smartnotes/internal/models"
)

// NoteStore is the note persistence collaborator. Implementations guarantee
// atomic single-key operations and nothing more; the orchestration core holds
// no other concurrency expectations against it.
type NoteStore interface {
	Put(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, id string) (*models.Note, error)
	List(ctx context.Context) ([]*models.Note, error)
	Delete(ctx context.Context, id string) error

	// UpdateSync applies a sync-state transition to the stored record. pageID
	// is attached only when non-empty.
	UpdateSync(ctx context.Context, id string, state models.SyncState, pageID string) error
}
