package services

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"memerender/internal/events"
	"memerender/internal/logging"
	"memerender/internal/repositories"
	"memerender/internal/theme"
)

type ThemeService interface {
	Startup(ctx context.Context)
	Shutdown()
	GetTheme() string
	SetTheme(pref string) error
	InitTheme()
	Appearance() string
}

type themeService struct {
	store   *theme.Store
	context context.Context
	log     *log.Logger

	// windowTheme switches the native window chrome; nil-safe before Startup.
	windowTheme func(ctx context.Context, dark bool)
}

// NewThemeService persists the preference through prefs and follows signal
// while the preference is "system".
func NewThemeService(prefs repositories.PreferenceRepository, signal theme.Signal) ThemeService {
	s := &themeService{
		log:         logging.Named("theme"),
		windowTheme: setWindowTheme,
	}
	s.store = theme.NewStore(NewPreferenceStorage(prefs), signal, s)
	return s
}

func (s *themeService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *themeService) Shutdown() {
	s.store.Close()
}

func (s *themeService) GetTheme() string {
	return string(s.store.GetInitialTheme())
}

func (s *themeService) SetTheme(pref string) error {
	p, err := theme.ParsePreference(pref)
	if err != nil {
		return err
	}
	s.store.SetTheme(p)
	return nil
}

func (s *themeService) InitTheme() {
	s.store.InitTheme()
}

func (s *themeService) Appearance() string {
	return string(s.store.Appearance())
}

// SetDark implements theme.Presenter.
func (s *themeService) SetDark(dark bool) {
	appearance := theme.AppearanceLight
	if dark {
		appearance = theme.AppearanceDark
	}
	s.log.Debug("apply appearance", "appearance", appearance)
	events.Emit(s.context, events.ThemeAppearance, string(appearance))
	if s.context != nil && s.windowTheme != nil {
		s.windowTheme(s.context, dark)
	}
}

func setWindowTheme(ctx context.Context, dark bool) {
	if dark {
		runtime.WindowSetDarkTheme(ctx)
		return
	}
	runtime.WindowSetLightTheme(ctx)
}

// PreferenceStorage adapts a PreferenceRepository to theme.Storage.
type PreferenceStorage struct {
	repo repositories.PreferenceRepository
}

func NewPreferenceStorage(repo repositories.PreferenceRepository) *PreferenceStorage {
	return &PreferenceStorage{repo: repo}
}

func (p *PreferenceStorage) Get(key string) (string, error) {
	return p.repo.Get(context.Background(), key)
}

func (p *PreferenceStorage) Set(key, value string) error {
	return p.repo.Set(context.Background(), key, value)
}
