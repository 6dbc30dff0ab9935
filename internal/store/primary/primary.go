// Package primary implements the note store against PostgreSQL.
package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haritha1313/smartnotes/internal/models"
)

// StoreImpl implements store.NoteStore using PostgreSQL.
type StoreImpl struct {
	db *pgxpool.Pool
}

// NewNoteStore connects to PostgreSQL and verifies the connection.
func NewNoteStore(ctx context.Context, dsn string) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

// Ping checks the database connection.
func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the connection pool.
func (s *StoreImpl) Close() {
	s.db.Close()
}

const noteColumns = `id, text, comment, url, title, category, timestamp, sync_status, page_id, created_at, updated_at, synced_at`

func scanNote(row pgx.Row, dest *models.Note) error {
	return row.Scan(
		&dest.ID,
		&dest.Text,
		&dest.Comment,
		&dest.URL,
		&dest.Title,
		&dest.Category,
		&dest.Timestamp,
		&dest.SyncState,
		&dest.PageID,
		&dest.CreatedAt,
		&dest.UpdatedAt,
		&dest.SyncedAt,
	)
}

func (s *StoreImpl) Put(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			comment = EXCLUDED.comment,
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			timestamp = EXCLUDED.timestamp,
			sync_status = EXCLUDED.sync_status,
			page_id = EXCLUDED.page_id,
			updated_at = EXCLUDED.updated_at,
			synced_at = EXCLUDED.synced_at`
	_, err := s.db.Exec(ctx, query,
		note.ID, note.Text, note.Comment, note.URL, note.Title, note.Category,
		note.Timestamp, note.SyncState, note.PageID, note.CreatedAt, note.UpdatedAt, note.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}
	return nil
}

func (s *StoreImpl) Get(ctx context.Context, id string) (*models.Note, error) {
	note := &models.Note{}
	row := s.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	if err := scanNote(row, note); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

func (s *StoreImpl) List(ctx context.Context) ([]*models.Note, error) {
	rows, err := s.db.Query(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := scanNote(rows, note); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (s *StoreImpl) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *StoreImpl) UpdateSync(ctx context.Context, id string, state models.SyncState, pageID string) error {
	query := `
		UPDATE notes SET
			sync_status = $2,
			page_id = CASE WHEN $3 <> '' THEN $3 ELSE page_id END,
			synced_at = CASE WHEN $2 = 'synced' THEN now() ELSE synced_at END,
			updated_at = now()
		WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, id, state, pageID)
	if err != nil {
		return fmt.Errorf("failed to update note sync state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
