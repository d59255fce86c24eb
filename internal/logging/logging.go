// Package logging holds the process-wide charm logger and its adapters.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	current = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "memerender",
		Level:           log.InfoLevel,
	})
)

// L returns the shared logger.
func L() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Configure replaces the shared logger with one writing to w at the named
// level. Unknown levels fall back to info.
func Configure(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "memerender",
		Level:           lvl,
	})

	mu.Lock()
	current = logger
	mu.Unlock()
	return logger
}

// Named returns a child logger tagged with a component name.
func Named(component string) *log.Logger {
	return L().With("component", component)
}
