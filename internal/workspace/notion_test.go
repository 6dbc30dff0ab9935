package workspace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritha1313/smartnotes/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*NotionClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewNotionClient(NotionClientOptions{BaseURL: srv.URL, Token: "secret-token"})
	require.NoError(t, err)
	return client, srv
}

func TestNotionClient_ReadSchema(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases/db-1", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, defaultAPIVersion, r.Header.Get("Notion-Version"))
		w.Write([]byte(`{"properties":{
			"Title":{"type":"title"},
			"Category":{"type":"select","select":{"options":[{"name":"Research"},{"name":"Development"}]}}
		}}`))
	})

	schema, err := client.ReadSchema(context.Background(), "db-1")
	require.NoError(t, err)
	require.Contains(t, schema, "Category")
	assert.Equal(t, "select", schema["Category"].Type)
	require.Len(t, schema["Category"].Options, 2)
	assert.Equal(t, "Research", schema["Category"].Options[0].Name)
	assert.Equal(t, "title", schema["Title"].Type)
}

func TestNotionClient_CreateRecord(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id":"page-42"}`))
	})

	id, err := client.CreateRecord(context.Background(), "db-1", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "page-42", id)
}

func TestNotionClient_ErrorResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"object_not_found","message":"Could not find database"}`))
	})

	_, err := client.ReadSchema(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "object_not_found")
}

func TestNotionClient_TestConnection(t *testing.T) {
	ok := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ok {
			w.Write([]byte(`{"object":"user"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"unauthorized","message":"bad token"}`))
	})

	assert.False(t, client.TestConnection(context.Background()))
	ok = true
	assert.True(t, client.TestConnection(context.Background()))
}

func TestNewNotionClient_RequiresToken(t *testing.T) {
	_, err := NewNotionClient(NotionClientOptions{Token: "  "})
	assert.Error(t, err)
}

func TestNoteFields_Mapping(t *testing.T) {
	longText := ""
	for len(longText) < 2500 {
		longText += "abcdefghij"
	}
	note := &models.Note{
		Text:      longText,
		Comment:   "check later",
		URL:       "https://example.com/post",
		Category:  "Research",
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	fields := NoteFields(note)

	content := fields["Content"].(map[string]any)["rich_text"].([]map[string]any)
	assert.Len(t, content[0]["text"].(map[string]any)["content"], maxRecordText)

	title := fields["Title"].(map[string]any)["title"].([]map[string]any)
	titleText := title[0]["text"].(map[string]any)["content"].(string)
	assert.Len(t, titleText, maxRecordTitle+3, "truncated title carries ellipsis")

	assert.Equal(t, "Research",
		fields["Category"].(map[string]any)["select"].(map[string]any)["name"])
	assert.Equal(t, "New",
		fields["Status"].(map[string]any)["select"].(map[string]any)["name"])
	assert.Contains(t, fields, "Comment")
	assert.Contains(t, fields, "Source")
}

func TestNoteFields_ExplicitTitle(t *testing.T) {
	fields := NoteFields(&models.Note{Text: "some longer captured text", Title: "My Title"})
	title := fields["Title"].(map[string]any)["title"].([]map[string]any)
	assert.Equal(t, "My Title", title[0]["text"].(map[string]any)["content"])
}

func TestNoteFields_Defaults(t *testing.T) {
	fields := NoteFields(&models.Note{Text: "short note"})
	assert.Equal(t, "General",
		fields["Category"].(map[string]any)["select"].(map[string]any)["name"])
	assert.NotContains(t, fields, "Comment")
	assert.NotContains(t, fields, "Source")
}
