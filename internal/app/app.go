package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/haritha1313/smartnotes/internal/cache"
	"github.com/haritha1313/smartnotes/internal/config"
	"github.com/haritha1313/smartnotes/internal/models"
	"github.com/haritha1313/smartnotes/internal/ratelimit"
	"github.com/haritha1313/smartnotes/internal/services"
	"github.com/haritha1313/smartnotes/internal/store"
	"github.com/haritha1313/smartnotes/internal/store/primary"
	"github.com/haritha1313/smartnotes/internal/workspace"
	"github.com/haritha1313/smartnotes/pkg/categorizer"
)

// App holds every initialized component. Commands and HTTP handlers pull
// what they need from here instead of wiring services themselves.
type App struct {
	Config *config.Config

	NoteStore store.NoteStore
	Limiter   *ratelimit.Limiter
	Caller    *workspace.Caller

	Generator             categorizer.TextGenerator
	CategoryExtractor     *services.CategoryExtractor
	CategorizationService *services.CategorizationService
	NoteService           *services.NoteService

	closers []func() error
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initNoteStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initWorkspaceStack(); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initCategorization(ctx); err != nil {
		app.Close()
		return nil, err
	}
	app.initNoteService()

	log.Debug("application initialization complete")
	return app, nil
}

// Close releases resources acquired during initialization. Safe to call on a
// partially initialized App.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warnf("close: %v", err)
		}
	}
	a.closers = nil
}

// Wait blocks until all in-flight background syncs have finished.
func (a *App) Wait() {
	if a.NoteService != nil {
		a.NoteService.Wait()
	}
}

// Creds returns workspace credentials from config, or nil when the workspace
// is not configured.
func (a *App) Creds() *models.WorkspaceCreds {
	if a.Config.Workspace.Token == "" || a.Config.Workspace.DatabaseID == "" {
		return nil
	}
	return &models.WorkspaceCreds{
		Token:      a.Config.Workspace.Token,
		DatabaseID: a.Config.Workspace.DatabaseID,
	}
}

func (a *App) initNoteStore(ctx context.Context) error {
	if dsn := a.Config.Database.DSN; dsn != "" {
		ps, err := primary.NewNoteStore(ctx, dsn)
		if err != nil {
			return fmt.Errorf("init note store: %w", err)
		}
		a.NoteStore = ps
		a.closers = append(a.closers, func() error { ps.Close(); return nil })
		return nil
	}
	log.Debug("no database DSN configured, using in-memory note store")
	a.NoteStore = store.NewMemoryStore()
	return nil
}

func (a *App) initWorkspaceStack() error {
	rps := a.Config.Workspace.RequestsPerSecond
	if rps <= 0 {
		rps = ratelimit.DefaultRequestsPerSecond
	}
	a.Limiter = ratelimit.New(rps)
	a.Caller = workspace.NewCaller(a.Limiter)
	return nil
}

func (a *App) initCategorization(ctx context.Context) error {
	cfg := a.Config

	switch cfg.Categorization.Provider {
	case "openai":
		if cfg.Categorization.OpenaiApiKey == "" {
			return fmt.Errorf("categorization provider is openai but no API key is set (OPENAI_API_KEY)")
		}
		op, err := services.NewOpenAIProvider(cfg.Categorization.OpenaiApiKey, cfg.Categorization.Model)
		if err != nil {
			return fmt.Errorf("init openai provider: %w", err)
		}
		a.Generator = op
	case "gemini":
		if cfg.Categorization.GoogleApiKey == "" {
			return fmt.Errorf("categorization provider is gemini but no API key is set (GEMINI_API_KEY)")
		}
		gp, err := services.NewGeminiProvider(ctx, cfg.Categorization.GoogleApiKey, cfg.Categorization.Model)
		if err != nil {
			return fmt.Errorf("init gemini provider: %w", err)
		}
		a.Generator = gp
		a.closers = append(a.closers, gp.Close)
	case "", "none":
		log.Debug("no AI provider configured, keyword categorization only")
		a.Generator = services.NoopGenerator{}
	default:
		return fmt.Errorf("unknown categorization provider: %s", cfg.Categorization.Provider)
	}

	categoryCache := cache.New[[]string]()
	suggestionCache := cache.New[categorizer.Suggestion]()
	a.CategoryExtractor = services.NewCategoryExtractor(a.Caller, services.DefaultWorkspaceFactory, categoryCache)

	primaryStrategy := categorizer.NewLLMCategorizer(a.Generator)
	fallback := categorizer.NewKeywordCategorizer()
	a.CategorizationService = services.NewCategorizationService(primaryStrategy, fallback, suggestionCache)
	return nil
}

func (a *App) initNoteService() {
	a.NoteService = services.NewNoteService(a.NoteStore, a.Caller, services.DefaultWorkspaceFactory)
}
