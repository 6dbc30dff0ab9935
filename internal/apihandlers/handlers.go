package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haritha1313/smartnotes/internal/app"
	"github.com/haritha1313/smartnotes/internal/models"
)

const (
	headerToken      = "X-Notion-Token"
	headerDatabaseID = "X-Notion-Database-Id"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// credsFrom resolves workspace credentials for a request: per-request headers
// take precedence, configured credentials fill the gaps. Returns nil when
// neither yields a usable pair.
func (h *APIHandler) credsFrom(c *gin.Context) *models.WorkspaceCreds {
	creds := models.WorkspaceCreds{
		Token:      strings.TrimSpace(c.GetHeader(headerToken)),
		DatabaseID: strings.TrimSpace(c.GetHeader(headerDatabaseID)),
	}
	if configured := h.App.Creds(); configured != nil {
		if creds.Token == "" {
			creds.Token = configured.Token
		}
		if creds.DatabaseID == "" {
			creds.DatabaseID = configured.DatabaseID
		}
	}
	if creds.Token == "" || creds.DatabaseID == "" {
		return nil
	}
	return &creds
}

type createNoteRequest struct {
	Text      string `json:"text"`
	Comment   string `json:"comment"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

func (h *APIHandler) CreateNoteHandler(c *gin.Context) {
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := models.NoteInput{
		Text:     req.Text,
		Comment:  req.Comment,
		URL:      req.URL,
		Title:    req.Title,
		Category: req.Category,
	}
	if req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			BadRequest(c, "Invalid timestamp, expected RFC 3339: "+err.Error())
			return
		}
		input.Timestamp = ts
	}

	note, err := h.App.NoteService.CreateAndSync(c.Request.Context(), input, h.credsFrom(c))
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			BadRequest(c, err.Error())
			return
		}
		Internal(c, fmt.Sprintf("CreateNoteHandler: failed to create note: %v", err))
		return
	}

	// The note is persisted locally even when the workspace sync failed or is
	// still pending; the sync_status field tells the client which it is.
	c.JSON(http.StatusCreated, gin.H{"data": note})
}

func (h *APIHandler) ListNotesHandler(c *gin.Context) {
	limit, offset, err := parseListPagination(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	notes, err := h.App.NoteService.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		Internal(c, fmt.Sprintf("ListNotesHandler: failed to list notes: %v", err))
		return
	}

	total := len(notes)
	if offset >= total {
		notes = notes[:0]
	} else {
		notes = notes[offset:]
	}
	if len(notes) > limit {
		notes = notes[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"data": notes, "count": len(notes), "total": total})
}

// parseListPagination validates limit/offset query parameters.
func parseListPagination(c *gin.Context) (limit, offset int, err error) {
	limit = 50
	offset = 0
	if l := c.Query("limit"); l != "" {
		if parsed, perr := strconv.Atoi(l); perr == nil && parsed > 0 {
			limit = parsed
		} else {
			return 0, 0, fmt.Errorf("invalid limit: %s", l)
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, perr := strconv.Atoi(o); perr == nil && parsed >= 0 {
			offset = parsed
		} else {
			return 0, 0, fmt.Errorf("invalid offset: %s", o)
		}
	}
	return limit, offset, nil
}

func (h *APIHandler) GetNoteHandler(c *gin.Context) {
	note, err := h.App.NoteService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			NotFound(c, "note not found: "+c.Param("id"))
			return
		}
		Internal(c, fmt.Sprintf("GetNoteHandler: failed to get note: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": note})
}

func (h *APIHandler) DeleteNoteHandler(c *gin.Context) {
	if err := h.App.NoteService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			NotFound(c, "note not found: "+c.Param("id"))
			return
		}
		Internal(c, fmt.Sprintf("DeleteNoteHandler: failed to delete note: %v", err))
		return
	}
	c.Status(http.StatusNoContent)
}

type suggestRequest struct {
	Content         string   `json:"content"`
	Comment         string   `json:"comment"`
	KnownCategories []string `json:"known_categories"`
}

// SuggestCategoryHandler runs categorization without creating a note. When
// the request does not carry known categories they are fetched from the
// workspace schema; schema failures degrade to the default list rather than
// failing the suggestion.
func (h *APIHandler) SuggestCategoryHandler(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	known := req.KnownCategories
	if len(known) == 0 {
		if creds := h.credsFrom(c); creds != nil {
			fetched, err := h.App.CategoryExtractor.Fetch(c.Request.Context(), creds.Token, creds.DatabaseID, true)
			if err == nil {
				known = fetched
			}
		}
	}

	suggestion, err := h.App.CategorizationService.Suggest(c.Request.Context(), req.Content, req.Comment, known)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			BadRequest(c, err.Error())
			return
		}
		Internal(c, fmt.Sprintf("SuggestCategoryHandler: categorization failed: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": suggestion})
}

func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	creds := h.credsFrom(c)
	if creds == nil {
		BadRequest(c, "workspace credentials required: set "+headerToken+" and "+headerDatabaseID)
		return
	}

	useCache := c.DefaultQuery("fresh", "false") != "true"
	categories, err := h.App.CategoryExtractor.Fetch(c.Request.Context(), creds.Token, creds.DatabaseID, useCache)
	if err != nil {
		BadGateway(c, fmt.Sprintf("ListCategoriesHandler: failed to read schema: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// WarmCategoriesHandler pre-populates the category cache. Always 200; the
// warmed flag reports whether the fetch succeeded.
func (h *APIHandler) WarmCategoriesHandler(c *gin.Context) {
	creds := h.credsFrom(c)
	if creds == nil {
		BadRequest(c, "workspace credentials required: set "+headerToken+" and "+headerDatabaseID)
		return
	}
	warmed := h.App.CategoryExtractor.Warm(c.Request.Context(), creds.Token, creds.DatabaseID)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"warmed": warmed}})
}

func (h *APIHandler) InvalidateCategoriesHandler(c *gin.Context) {
	if id := c.Query("database_id"); id != "" {
		h.App.CategoryExtractor.Invalidate(id)
	} else {
		h.App.CategoryExtractor.InvalidateAll()
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) TestConnectionHandler(c *gin.Context) {
	creds := h.credsFrom(c)
	if creds == nil {
		BadRequest(c, "workspace credentials required: set "+headerToken+" and "+headerDatabaseID)
		return
	}
	connected := h.App.NoteService.TestWorkspace(c.Request.Context(), *creds)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"connected": connected}})
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes mounts all API routes on the router.
func (h *APIHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.HealthHandler)

	api := r.Group("/api")
	{
		api.POST("/notes", h.CreateNoteHandler)
		api.GET("/notes", h.ListNotesHandler)
		api.POST("/notes/suggest", h.SuggestCategoryHandler)
		api.GET("/notes/:id", h.GetNoteHandler)
		api.DELETE("/notes/:id", h.DeleteNoteHandler)

		api.GET("/categories", h.ListCategoriesHandler)
		api.POST("/categories/warm", h.WarmCategoriesHandler)
		api.DELETE("/categories/cache", h.InvalidateCategoriesHandler)

		api.POST("/workspace/test", h.TestConnectionHandler)
	}
}
