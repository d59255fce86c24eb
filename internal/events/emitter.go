package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit publishes an event. It is a no-op until an emitter is installed, so
// services stay usable from the CLI and in tests.
var Emit = func(ctx context.Context, name string, payload any) {}

// EnableRuntimeEmitter routes Emit into the Wails runtime. ctx must be the
// context handed to OnStartup.
func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, payload any) {
		if ctx == nil {
			return
		}
		evt := NewEnvelope(name, payload)
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, payload any)) {
	if f == nil {
		Emit = func(context.Context, string, any) {}
		return
	}
	Emit = f
}
