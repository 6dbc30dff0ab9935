package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritha1313/smartnotes/internal/models"
	"github.com/haritha1313/smartnotes/internal/store"
	"github.com/haritha1313/smartnotes/internal/workspace"
)

func newNoteService(client workspace.Client) (*NoteService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewNoteService(st, testCaller(), stubFactory(client)), st
}

var testCreds = &models.WorkspaceCreds{Token: "tok", DatabaseID: "db-1"}

func TestCreateAndSync_NoCreds(t *testing.T) {
	svc, st := newNoteService(&stubWorkspaceClient{})

	note, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "hello"}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.SyncLocal, note.SyncState)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "General", note.Category)

	stored, err := st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncLocal, stored.SyncState)
}

func TestCreateAndSync_EmptyText(t *testing.T) {
	svc, _ := newNoteService(&stubWorkspaceClient{})
	_, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "  "}, testCreds)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCreateAndSync_FastSuccess(t *testing.T) {
	client := &stubWorkspaceClient{createID: "page-7", createDelay: 10 * time.Millisecond}
	svc, st := newNoteService(client)

	note, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "hello", Category: "Research"}, testCreds)
	require.NoError(t, err)

	assert.Equal(t, models.SyncSynced, note.SyncState)
	assert.Equal(t, "page-7", note.PageID)

	stored, err := st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncSynced, stored.SyncState)
	assert.Equal(t, "page-7", stored.PageID)
	assert.NotNil(t, stored.SyncedAt)
}

func TestCreateAndSync_FastFailure(t *testing.T) {
	client := &stubWorkspaceClient{createErr: &workspace.APIError{StatusCode: http.StatusBadRequest}}
	svc, st := newNoteService(client)

	note, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "hello"}, testCreds)
	require.NoError(t, err, "a failed external sync is metadata, not an error")

	assert.Equal(t, models.SyncFailed, note.SyncState)
	assert.Equal(t, 1, client.createCalls, "no further retries within this call")

	stored, err := st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncFailed, stored.SyncState)
}

func TestCreateAndSync_SlowHandsOffToBackground(t *testing.T) {
	client := &stubWorkspaceClient{createID: "page-9", createDelay: 100 * time.Millisecond}
	svc, st := newNoteService(client)
	svc.budget = 20 * time.Millisecond

	start := time.Now()
	note, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "slow sync"}, testCreds)
	require.NoError(t, err)

	assert.Equal(t, models.SyncPending, note.SyncState)
	assert.Less(t, time.Since(start), 80*time.Millisecond, "pending must be returned at the budget, not at completion")

	stored, err := st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, stored.SyncState)

	// Background completion applies the terminal transition.
	svc.Wait()
	stored, err = st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncSynced, stored.SyncState)
	assert.Equal(t, "page-9", stored.PageID)
}

func TestCreateAndSync_SlowFailureRecordedInBackground(t *testing.T) {
	client := &stubWorkspaceClient{
		createErr:   &workspace.APIError{StatusCode: http.StatusBadRequest},
		createDelay: 60 * time.Millisecond,
	}
	svc, st := newNoteService(client)
	svc.budget = 10 * time.Millisecond

	note, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "doomed"}, testCreds)
	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, note.SyncState)

	svc.Wait()
	stored, err := st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncFailed, stored.SyncState)
}

func TestCreateAndSync_LocalNoteSurvivesSyncFailure(t *testing.T) {
	client := &stubWorkspaceClient{createErr: &workspace.APIError{StatusCode: http.StatusForbidden}}
	svc, st := newNoteService(client)

	note, err := svc.CreateAndSync(context.Background(), models.NoteInput{Text: "keep me"}, testCreds)
	require.NoError(t, err)

	stored, err := st.Get(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", stored.Text)
}

func TestTestWorkspace(t *testing.T) {
	svc, _ := newNoteService(&stubWorkspaceClient{connected: true})
	assert.True(t, svc.TestWorkspace(context.Background(), *testCreds))

	svc, _ = newNoteService(&stubWorkspaceClient{connected: false})
	assert.False(t, svc.TestWorkspace(context.Background(), *testCreds))
}

func TestList_FiltersAndSorts(t *testing.T) {
	svc, st := newNoteService(&stubWorkspaceClient{})
	ctx := context.Background()

	old := time.Now().Add(-time.Hour)
	require.NoError(t, st.Put(ctx, &models.Note{ID: "a", Text: "react hooks guide", Category: "Development", CreatedAt: old}))
	require.NoError(t, st.Put(ctx, &models.Note{ID: "b", Text: "pasta recipe", Category: "Cooking", CreatedAt: time.Now()}))

	notes, err := svc.List(ctx, "development", "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "a", notes[0].ID)

	notes, err = svc.List(ctx, "", "PASTA")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "b", notes[0].ID)

	notes, err = svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "b", notes[0].ID, "newest first")
}
