package store

import (
	"context"
	"sync"
	"time"

	"github.com/haritha1313/smartnotes/internal/models"
)

// MemoryStore keeps notes in a process-local map. The default store when no
// database DSN is configured, and the store used by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]models.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[string]models.Note)}
}

func (s *MemoryStore) Put(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = *note
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &note, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Note, 0, len(s.notes))
	for _, note := range s.notes {
		n := note
		out = append(out, &n)
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) UpdateSync(_ context.Context, id string, state models.SyncState, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok {
		return models.ErrNotFound
	}
	note.SyncState = state
	if pageID != "" {
		note.PageID = pageID
	}
	now := time.Now().UTC()
	note.UpdatedAt = now
	if state == models.SyncSynced {
		note.SyncedAt = &now
	}
	s.notes[id] = note
	return nil
}
