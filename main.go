package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"memerender/internal/config"
	"memerender/internal/database"
	"memerender/internal/imagegen"
	"memerender/internal/logging"
	"memerender/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	log := logging.Configure(os.Stderr, cfg.LogLevel)

	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: logger.Warn,
	})
	if err != nil {
		log.Error("opening database", "err", err)
		os.Exit(1)
	}

	catalog, err := imagegen.LoadCatalog()
	if err != nil {
		log.Error("loading image model catalog", "err", err)
		os.Exit(1)
	}

	keyringService, err := services.OpenKeyring(cfg.AppID)
	if err != nil {
		log.Error("opening keyring", "err", err)
		os.Exit(1)
	}

	//Create each service
	dbService := services.NewDbServices(db)
	resolver := imagegen.NewResolver(catalog, keyringService, imagegen.ResolverConfig{
		Provider:  cfg.ImageProvider,
		RouterURL: cfg.RouterURL,
	})

	app := NewApp(cfg, database.IsDevelopment())
	app.dbClose = func() error { return database.Close(db) }
	app.Appearance = services.NewSystemAppearance()
	app.Theme = services.NewThemeService(dbService.Preferences, app.Appearance)
	app.Auth = services.NewAuthService(dbService.Users, dbService.Preferences, keyringService, cfg.ServiceURL)
	app.Auth.OnSignOut(resolver.Forget)
	app.Generation = services.NewGenerationService(app.Auth, resolver, imagegen.NewClient(), services.NewHistoryRecorder(dbService.Records))
	app.History = services.NewHistoryService(dbService.Records, app.Auth)
	app.Export = services.NewExportService(services.SessionOf(app.Generation))
	app.Refine = services.NewRefineService(keyringService, services.RefineConfig{
		Provider:  cfg.RefineProvider,
		Model:     cfg.RefineModel,
		RouterURL: cfg.RouterURL,
	}, nil)
	app.Models = services.NewModelCatalogService(catalog, cfg.ImageProvider)
	app.Suggestions = services.NewSuggestionService()

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Meme Render",
		Width:  1100,
		Height: 780,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Meme Render",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		Logger:           logging.NewWailsLogger(log),
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			app.Appearance,
			app.Theme,
			app.Auth,
			app.Generation,
			app.History,
			app.Export,
			app.Refine,
			app.Models,
			app.Suggestions,
			keyringService,
		},
	})

	if err != nil {
		log.Error("wails run", "err", err)
	}
}
