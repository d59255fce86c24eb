package logging

import (
	"github.com/charmbracelet/log"
	"github.com/wailsapp/wails/v2/pkg/logger"
)

// WailsLogger routes the Wails runtime logger into the charm logger so
// runtime.LogInfo and friends share one stream with the services.
type WailsLogger struct {
	l *log.Logger
}

var _ logger.Logger = (*WailsLogger)(nil)

func NewWailsLogger(l *log.Logger) *WailsLogger {
	if l == nil {
		l = L()
	}
	return &WailsLogger{l: l.With("component", "wails")}
}

func (w *WailsLogger) Print(message string)   { w.l.Print(message) }
func (w *WailsLogger) Trace(message string)   { w.l.Debug(message) }
func (w *WailsLogger) Debug(message string)   { w.l.Debug(message) }
func (w *WailsLogger) Info(message string)    { w.l.Info(message) }
func (w *WailsLogger) Warning(message string) { w.l.Warn(message) }
func (w *WailsLogger) Error(message string)   { w.l.Error(message) }
func (w *WailsLogger) Fatal(message string)   { w.l.Fatal(message) }
