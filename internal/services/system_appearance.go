package services

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"memerender/internal/events"
	"memerender/internal/logging"
)

var (
	ErrAppearanceNotReported = errors.New("front end has not reported its colour scheme")
	ErrNoRuntime             = errors.New("wails runtime not started")
)

// SystemAppearance is the desktop colour-scheme signal. The front end owns
// the prefers-color-scheme media query and forwards it either through the
// bound ReportPrefersDark method or by emitting events.AppearanceSystem.
type SystemAppearance struct {
	ctx context.Context
	log *log.Logger

	mu        sync.Mutex
	dark      bool
	reported  bool
	nextID    int
	listeners map[int]func(bool)

	// eventsOn is runtime.EventsOn; replaced in tests.
	eventsOn func(ctx context.Context, name string, cb func(optionalData ...interface{})) func()
}

func NewSystemAppearance() *SystemAppearance {
	return &SystemAppearance{
		log:       logging.Named("appearance"),
		listeners: make(map[int]func(bool)),
		eventsOn:  runtime.EventsOn,
	}
}

func (a *SystemAppearance) Startup(ctx context.Context) {
	a.ctx = ctx
}

// PrefersDark returns the last reported value, false before any report.
func (a *SystemAppearance) PrefersDark() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dark
}

// ReportPrefersDark is called by the front end on load and whenever the
// media query changes.
func (a *SystemAppearance) ReportPrefersDark(dark bool) {
	a.mu.Lock()
	changed := !a.reported || a.dark != dark
	a.dark = dark
	a.reported = true
	fns := make([]func(bool), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	if !changed {
		return
	}
	a.log.Debug("system colour scheme", "dark", dark)
	for _, fn := range fns {
		fn(dark)
	}
}

// OnChange subscribes through the bound-method channel. It is only
// available once the front end has reported at least once.
func (a *SystemAppearance) OnChange(fn func(bool)) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.reported {
		return nil, ErrAppearanceNotReported
	}
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, id)
			a.mu.Unlock()
		})
	}, nil
}

// AddListener subscribes to the events.AppearanceSystem runtime event.
func (a *SystemAppearance) AddListener(fn func(bool)) (func(), error) {
	if a.ctx == nil || a.eventsOn == nil {
		return nil, ErrNoRuntime
	}
	cancel := a.eventsOn(a.ctx, events.AppearanceSystem, func(data ...interface{}) {
		if len(data) == 0 {
			return
		}
		dark, ok := data[0].(bool)
		if !ok {
			a.log.Debug("ignoring malformed appearance event", "data", data[0])
			return
		}
		a.mu.Lock()
		a.dark = dark
		a.mu.Unlock()
		fn(dark)
	})
	return cancel, nil
}

// ListenerCount reports the number of bound-method subscribers.
func (a *SystemAppearance) ListenerCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.listeners)
}
