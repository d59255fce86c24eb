package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"golang.design/x/clipboard"

	"memerender/internal/generation"
	"memerender/internal/logging"
)

const defaultImageName = "meme-render.png"

var ErrNoImageToExport = errors.New("no image to export")

// ImageSource is what the export actions read from.
type ImageSource interface {
	ImageBytes() ([]byte, bool)
	State() generation.State
}

// ExportService offers the best-effort copy and save actions. Failures are
// logged and never returned to the view.
type ExportService interface {
	Startup(ctx context.Context)
	CopyImage()
	CopyPrompt()
	SaveImage()
}

type exportService struct {
	source  ImageSource
	context context.Context
	log     *log.Logger

	clipOnce sync.Once
	clipErr  error

	// Replaced in tests.
	writeClipboard func(format clipboard.Format, data []byte) error
	saveDialog     func(ctx context.Context) (string, error)
}

func NewExportService(source ImageSource) ExportService {
	s := &exportService{
		source: source,
		log:    logging.Named("export"),
	}
	s.writeClipboard = s.systemClipboard
	s.saveDialog = nativeSaveDialog
	return s
}

func (s *exportService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *exportService) CopyImage() {
	data, ok := s.source.ImageBytes()
	if !ok {
		s.log.Debug("copy image skipped", "err", ErrNoImageToExport)
		return
	}
	if err := s.writeClipboard(clipboard.FmtImage, data); err != nil {
		s.log.Warn("copy image failed", "err", err)
	}
}

func (s *exportService) CopyPrompt() {
	prompt := strings.TrimSpace(s.source.State().Prompt)
	if prompt == "" {
		return
	}
	if err := s.writeClipboard(clipboard.FmtText, []byte(prompt)); err != nil {
		s.log.Warn("copy prompt failed", "err", err)
	}
}

func (s *exportService) SaveImage() {
	data, ok := s.source.ImageBytes()
	if !ok {
		s.log.Debug("save image skipped", "err", ErrNoImageToExport)
		return
	}
	if s.context == nil {
		s.log.Debug("save image skipped: runtime not started")
		return
	}
	path, err := s.saveDialog(s.context)
	if err != nil {
		s.log.Warn("save dialog failed", "err", err)
		return
	}
	if path == "" {
		return
	}
	if err := WriteImageFile(path, data); err != nil {
		s.log.Warn("save image failed", "path", path, "err", err)
		return
	}
	s.log.Info("image saved", "path", path)
}

func (s *exportService) systemClipboard(format clipboard.Format, data []byte) error {
	s.clipOnce.Do(func() {
		s.clipErr = clipboard.Init()
	})
	if s.clipErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", s.clipErr)
	}
	clipboard.Write(format, data)
	return nil
}

func nativeSaveDialog(ctx context.Context) (string, error) {
	return runtime.SaveFileDialog(ctx, runtime.SaveDialogOptions{
		Title:           "Save image",
		DefaultFilename: defaultImageName,
		Filters: []runtime.FileFilter{
			{DisplayName: "PNG image (*.png)", Pattern: "*.png"},
			{DisplayName: "JPEG image (*.jpg)", Pattern: "*.jpg;*.jpeg"},
		},
	})
}

// WriteImageFile writes PNG bytes to path. A .jpg or .jpeg target is
// re-encoded; any other extension gets the PNG bytes as they are.
func WriteImageFile(path string, png []byte) error {
	if len(png) == 0 {
		return ErrNoImageToExport
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		img, err := imaging.Decode(bytes.NewReader(png))
		if err != nil {
			return fmt.Errorf("decode image: %w", err)
		}
		return imaging.Save(img, path, imaging.JPEGQuality(90))
	}
	return os.WriteFile(path, png, 0o644)
}
