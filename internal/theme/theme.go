// Package theme keeps the user's light/dark/system preference, resolves it
// against the platform's colour-scheme signal and applies the result.
package theme

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"memerender/internal/logging"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "theme"

// Preference is the persisted tri-state choice.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// Appearance is what actually gets shown.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// ParsePreference accepts exactly one of the three tokens.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(s); p {
	case Light, Dark, System:
		return p, nil
	}
	return "", fmt.Errorf("theme must be 'light', 'dark', or 'system', got %q", s)
}

// Valid reports whether p is one of the three tokens.
func (p Preference) Valid() bool {
	_, err := ParsePreference(string(p))
	return err == nil
}

// Resolve maps a preference onto an appearance.
func Resolve(p Preference, prefersDark bool) Appearance {
	switch p {
	case Dark:
		return AppearanceDark
	case Light:
		return AppearanceLight
	}
	if prefersDark {
		return AppearanceDark
	}
	return AppearanceLight
}

// Storage is a fallible string key/value store.
type Storage interface {
	// Get returns "" with a nil error when the key is absent.
	Get(key string) (string, error)
	Set(key, value string) error
}

// Signal reports the platform's current colour-scheme preference.
type Signal interface {
	PrefersDark() bool
}

// ChangeNotifier is the primary subscription mechanism of a Signal.
type ChangeNotifier interface {
	OnChange(fn func(prefersDark bool)) (cancel func(), err error)
}

// LegacyNotifier is tried when ChangeNotifier is missing or fails.
type LegacyNotifier interface {
	AddListener(fn func(prefersDark bool)) (cancel func(), err error)
}

// Presenter owns the single dark-mode flag of the presentation layer.
type Presenter interface {
	SetDark(dark bool)
}

// Store ties a Storage, Signal and Presenter together. It holds at most one
// platform subscription at a time.
type Store struct {
	storage   Storage
	signal    Signal
	presenter Presenter
	log       *log.Logger

	subMu  sync.Mutex
	cancel func()

	mu      sync.Mutex
	applied *Appearance
}

func NewStore(storage Storage, signal Signal, presenter Presenter) *Store {
	return &Store{
		storage:   storage,
		signal:    signal,
		presenter: presenter,
		log:       logging.Named("theme"),
	}
}

// GetInitialTheme returns the stored preference or System when the stored
// value is absent, unreadable or not one of the three tokens.
func (s *Store) GetInitialTheme() Preference {
	if s.storage == nil {
		return System
	}
	raw, err := s.storage.Get(StorageKey)
	if err != nil {
		s.log.Debug("read theme preference", "err", err)
		return System
	}
	p, err := ParsePreference(raw)
	if err != nil {
		return System
	}
	return p
}

// SetTheme persists p and applies it. Write failures are ignored.
func (s *Store) SetTheme(p Preference) {
	if !p.Valid() {
		s.log.Debug("ignoring invalid theme preference", "value", string(p))
		return
	}
	if s.storage != nil {
		if err := s.storage.Set(StorageKey, string(p)); err != nil {
			s.log.Debug("write theme preference", "err", err)
		}
	}
	s.apply(p)
}

// InitTheme applies the stored preference and replaces the platform
// subscription. Safe to call repeatedly.
func (s *Store) InitTheme() {
	s.apply(s.GetInitialTheme())

	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.cancel = s.subscribe(s.onPlatformChange)
}

// Close drops the platform subscription.
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Appearance returns the appearance last applied, or the one the stored
// preference currently resolves to when nothing was applied yet.
func (s *Store) Appearance() Appearance {
	s.mu.Lock()
	applied := s.applied
	s.mu.Unlock()
	if applied != nil {
		return *applied
	}
	return Resolve(s.GetInitialTheme(), s.prefersDark())
}

func (s *Store) onPlatformChange(prefersDark bool) {
	if s.GetInitialTheme() == System {
		s.applyResolved(Resolve(System, prefersDark))
	}
}

// subscribe must be called with s.subMu held.
func (s *Store) subscribe(fn func(bool)) func() {
	if s.signal == nil {
		return nil
	}
	if n, ok := s.signal.(ChangeNotifier); ok {
		cancel, err := n.OnChange(fn)
		if err == nil {
			return cancel
		}
		s.log.Debug("colour scheme subscription failed, trying legacy listener", "err", err)
	}
	if n, ok := s.signal.(LegacyNotifier); ok {
		cancel, err := n.AddListener(fn)
		if err == nil {
			return cancel
		}
		s.log.Debug("legacy colour scheme listener failed", "err", err)
	}
	return nil
}

func (s *Store) prefersDark() bool {
	return s.signal != nil && s.signal.PrefersDark()
}

func (s *Store) apply(p Preference) {
	s.applyResolved(Resolve(p, s.prefersDark()))
}

func (s *Store) applyResolved(a Appearance) {
	s.mu.Lock()
	s.applied = &a
	s.mu.Unlock()

	if s.presenter != nil {
		s.presenter.SetDark(a == AppearanceDark)
	}
}
