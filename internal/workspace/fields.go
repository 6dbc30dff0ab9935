package workspace

import (
	"strings"
	"time"

	"github.com/haritha1313/smartnotes/internal/models"
)

// Field payload limits enforced before pushing a note, matching what the
// workspace API accepts for rich text properties.
const (
	maxRecordText    = 2000
	maxRecordComment = 500
	maxRecordTitle   = 100
)

// NoteFields maps a note onto the workspace database's property payload.
func NoteFields(note *models.Note) map[string]any {
	text := note.Text
	if len(text) > maxRecordText {
		text = text[:maxRecordText]
	}

	title := strings.TrimSpace(note.Title)
	if title == "" {
		title = strings.TrimSpace(text)
	}
	if len(title) > maxRecordTitle {
		title = title[:maxRecordTitle] + "..."
	}

	category := note.Category
	if category == "" {
		category = "General"
	}

	captured := note.Timestamp
	if captured.IsZero() {
		captured = time.Now().UTC()
	}

	fields := map[string]any{
		"Title": map[string]any{
			"title": []map[string]any{{"text": map[string]any{"content": title}}},
		},
		"Content": map[string]any{
			"rich_text": []map[string]any{{"text": map[string]any{"content": text}}},
		},
		"Captured": map[string]any{
			"date": map[string]any{"start": captured.Format(time.RFC3339)},
		},
		"Category": map[string]any{
			"select": map[string]any{"name": category},
		},
		"Status": map[string]any{
			"select": map[string]any{"name": "New"},
		},
	}

	if note.URL != "" {
		fields["Source"] = map[string]any{"url": note.URL}
	}
	if comment := note.Comment; comment != "" {
		if len(comment) > maxRecordComment {
			comment = comment[:maxRecordComment]
		}
		fields["Comment"] = map[string]any{
			"rich_text": []map[string]any{{"text": map[string]any{"content": comment}}},
		}
	}
	return fields
}
