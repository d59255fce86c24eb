package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"memerender/internal/config"
	"memerender/internal/events"
	"memerender/internal/services"
)

// AppInfo is the non-secret configuration the front end needs.
type AppInfo struct {
	ServiceURL    string `json:"serviceUrl"`
	AppID         string `json:"appId"`
	ImageProvider string `json:"imageProvider"`
	Development   bool   `json:"development"`
}

// startable is implemented by every bound service.
type startable interface {
	Startup(ctx context.Context)
}

// App struct
type App struct {
	ctx     context.Context
	cfg     config.Config
	dev     bool
	dbClose func() error

	Appearance  *services.SystemAppearance
	Theme       services.ThemeService
	Auth        services.AuthService
	Generation  services.GenerationService
	History     services.HistoryService
	Export      services.ExportService
	Refine      services.RefineService
	Models      services.ModelCatalogService
	Suggestions *services.SuggestionService
}

// NewApp creates a new App application struct
func NewApp(cfg config.Config, dev bool) *App {
	return &App{cfg: cfg, dev: dev}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter()

	for _, s := range []startable{
		a.Appearance,
		a.Theme,
		a.Auth,
		a.Generation,
		a.History,
		a.Export,
		a.Refine,
		a.Models,
	} {
		s.Startup(ctx)
	}
	runtime.LogInfo(ctx, fmt.Sprintf("meme render started (provider %s)", a.cfg.ImageProvider))
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.Theme != nil {
		a.Theme.Shutdown()
	}

	// Close database connection pool
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// Info returns the configuration the front end displays.
func (a *App) Info() AppInfo {
	return AppInfo{
		ServiceURL:    a.cfg.ServiceURL,
		AppID:         a.cfg.AppID,
		ImageProvider: a.cfg.ImageProvider,
		Development:   a.dev,
	}
}

// OpenServiceURL opens the key management page in the system browser.
func (a *App) OpenServiceURL() {
	if a.ctx == nil {
		return
	}
	runtime.BrowserOpenURL(a.ctx, a.cfg.ServiceURL)
}
