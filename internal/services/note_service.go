package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/haritha1313/smartnotes/internal/models"
	"github.com/haritha1313/smartnotes/internal/store"
	"github.com/haritha1313/smartnotes/internal/workspace"
)

// ForegroundSyncBudget is how long CreateAndSync waits for the external
// create before handing the attempt off to the background.
const ForegroundSyncBudget = time.Second

type syncOutcome struct {
	pageID string
	err    error
}

// NoteService persists notes and drives their synchronization state machine:
//
//	local -> synced | failed          (resolved within the foreground budget)
//	local -> pending -> synced | failed  (resolved in the background)
//
// synced and failed are terminal per sync attempt.
type NoteService struct {
	store      store.NoteStore
	caller     *workspace.Caller
	newClient  WorkspaceClientFactory
	budget     time.Duration
	background sync.WaitGroup
}

func NewNoteService(noteStore store.NoteStore, caller *workspace.Caller, factory WorkspaceClientFactory) *NoteService {
	if factory == nil {
		factory = DefaultWorkspaceFactory
	}
	return &NoteService{
		store:     noteStore,
		caller:    caller,
		newClient: factory,
		budget:    ForegroundSyncBudget,
	}
}

// CreateAndSync persists the note locally and, when creds are given, pushes
// it to the external workspace. The returned note's SyncState reports how far
// the attempt got within the foreground budget; a pending note is finished in
// the background. A failed external sync is metadata, never an error: local
// persistence already succeeded.
func (s *NoteService) CreateAndSync(ctx context.Context, input models.NoteInput, creds *models.WorkspaceCreds) (*models.Note, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("%w: note text is empty", models.ErrInvalidInput)
	}

	now := time.Now().UTC()
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = now
	}
	category := input.Category
	if category == "" {
		category = defaultCategoryName
	}

	note := &models.Note{
		ID:        uuid.NewString(),
		Text:      input.Text,
		Comment:   input.Comment,
		URL:       input.URL,
		Title:     input.Title,
		Category:  category,
		Timestamp: timestamp,
		SyncState: models.SyncLocal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to persist note: %w", err)
	}

	if creds == nil {
		return note, nil
	}

	client, err := s.newClient(creds.Token)
	if err != nil {
		log.Warnf("workspace client setup failed for note %s: %v", note.ID, err)
		s.applyOutcome(note.ID, syncOutcome{err: err})
		note.SyncState = models.SyncFailed
		return note, nil
	}

	// The create call runs detached from the request context: if the
	// foreground budget expires the work is handed off, not cancelled.
	resultCh := make(chan syncOutcome, 1)
	databaseID := creds.DatabaseID
	fields := workspace.NoteFields(note)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		var pageID string
		err := s.caller.Execute(context.Background(), "createRecord", func(ctx context.Context) error {
			var err error
			pageID, err = client.CreateRecord(ctx, databaseID, fields)
			return err
		})
		resultCh <- syncOutcome{pageID: pageID, err: err}
	}()

	timer := time.NewTimer(s.budget)
	defer timer.Stop()
	select {
	case outcome := <-resultCh:
		s.applyOutcome(note.ID, outcome)
		if outcome.err != nil {
			note.SyncState = models.SyncFailed
		} else {
			note.SyncState = models.SyncSynced
			note.PageID = outcome.pageID
		}
	case <-timer.C:
		log.Infof("sync timeout for note %s, continuing in background", note.ID)
		note.SyncState = models.SyncPending
		if err := s.store.UpdateSync(context.Background(), note.ID, models.SyncPending, ""); err != nil {
			log.Errorf("failed to mark note %s pending: %v", note.ID, err)
		}
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			s.applyOutcome(note.ID, <-resultCh)
		}()
	}

	return note, nil
}

// applyOutcome records a finished sync attempt. It is the single code path
// for terminal transitions, invoked from both the foreground wait and the
// background completion.
func (s *NoteService) applyOutcome(noteID string, outcome syncOutcome) {
	ctx := context.Background()
	if outcome.err != nil {
		log.Warnf("workspace sync failed for note %s (non-critical): %v", noteID, outcome.err)
		if err := s.store.UpdateSync(ctx, noteID, models.SyncFailed, ""); err != nil {
			log.Errorf("failed to record sync failure for note %s: %v", noteID, err)
		}
		return
	}
	log.Infof("note %s synced to workspace: %s", noteID, outcome.pageID)
	if err := s.store.UpdateSync(ctx, noteID, models.SyncSynced, outcome.pageID); err != nil {
		log.Errorf("failed to record sync success for note %s: %v", noteID, err)
	}
}

// TestWorkspace reports whether the given credentials can reach the external
// store. The probe is rate limited like every other workspace call.
func (s *NoteService) TestWorkspace(ctx context.Context, creds models.WorkspaceCreds) bool {
	client, err := s.newClient(creds.Token)
	if err != nil {
		return false
	}
	connErr := s.caller.Execute(ctx, "testConnection", func(ctx context.Context) error {
		if !client.TestConnection(ctx) {
			return fmt.Errorf("connection test failed")
		}
		return nil
	})
	return connErr == nil
}

// Get returns a stored note.
func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.store.Get(ctx, id)
}

// List returns all stored notes, optionally filtered by category and a
// case-insensitive search over text, comment and title.
func (s *NoteService) List(ctx context.Context, category, search string) ([]*models.Note, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := notes[:0]
	searchLower := strings.ToLower(search)
	for _, note := range notes {
		if category != "" && !strings.EqualFold(note.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(note.Text), searchLower) &&
			!strings.Contains(strings.ToLower(note.Comment), searchLower) &&
			!strings.Contains(strings.ToLower(note.Title), searchLower) {
			continue
		}
		filtered = append(filtered, note)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// Delete removes a stored note.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Wait blocks until all background sync completions have been applied. Used
// on shutdown and by tests.
func (s *NoteService) Wait() {
	s.background.Wait()
}
