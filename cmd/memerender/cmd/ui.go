package cmd

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"memerender/internal/theme"
)

var (
	paletteMu sync.RWMutex
	darkUI    = true
)

// terminalSignal reports the terminal background. Terminals offer no
// change notification, so a system preference is resolved once per run.
type terminalSignal struct{}

func (terminalSignal) PrefersDark() bool {
	return lipgloss.HasDarkBackground()
}

// palettePresenter switches the CLI colours.
type palettePresenter struct{}

func (palettePresenter) SetDark(dark bool) {
	paletteMu.Lock()
	darkUI = dark
	paletteMu.Unlock()
}

var _ theme.Presenter = palettePresenter{}

func isDark() bool {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return darkUI
}

func pick(light, dark string) lipgloss.Color {
	if isDark() {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(pick("#1d4ed8", "#60a5fa"))
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(pick("#6b7280", "#9ca3af"))
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(pick("#b91c1c", "#f87171"))
}

func okStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(pick("#15803d", "#4ade80"))
}

// applyTheme loads the stored preference and colours output accordingly.
func applyTheme(e *env) *theme.Store {
	store := theme.NewStore(newStorage(e), terminalSignal{}, palettePresenter{})
	store.InitTheme()
	return store
}
