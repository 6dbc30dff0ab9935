package models

import (
	"time"
)

// SyncState tracks a note's synchronization with the external workspace.
type SyncState string

const (
	SyncLocal   SyncState = "local"
	SyncPending SyncState = "pending"
	SyncSynced  SyncState = "synced"
	SyncFailed  SyncState = "failed"
)

// Note is the locally persisted record of a captured snippet.
type Note struct {
	ID         string     `json:"id" db:"id"`
	Text       string     `json:"text" db:"text"`
	Comment    string     `json:"comment,omitempty" db:"comment"`
	URL        string     `json:"url,omitempty" db:"url"`
	Title      string     `json:"title" db:"title"`
	Category   string     `json:"category" db:"category"`
	Timestamp  time.Time  `json:"timestamp" db:"timestamp"`
	SyncState  SyncState  `json:"sync_status" db:"sync_status"`
	PageID     string     `json:"page_id,omitempty" db:"page_id"` // external record reference, set once synced
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	SyncedAt   *time.Time `json:"synced_at,omitempty" db:"synced_at"`
}

// NoteInput is the validated input for creating a note. Text is assumed to be
// pre-sanitized by the caller.
type NoteInput struct {
	Text      string
	Comment   string
	URL       string
	Title     string
	Category  string
	Timestamp time.Time
}

// WorkspaceCreds identifies the external workspace a note syncs into.
type WorkspaceCreds struct {
	Token      string
	DatabaseID string
}

// CategorySuggestion is the immutable result of one categorization call.
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	IsNew      bool    `json:"is_new"`
	Reasoning  string  `json:"reasoning,omitempty"`
}
