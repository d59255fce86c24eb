package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/clipboard"

	"memerender/internal/generation"
)

type staticImageSource struct {
	data   []byte
	prompt string
}

func (s staticImageSource) ImageBytes() ([]byte, bool) { return s.data, len(s.data) > 0 }
func (s staticImageSource) State() generation.State    { return generation.State{Prompt: s.prompt} }

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type clipWrite struct {
	format clipboard.Format
	data   []byte
}

func newExportForTest(src ImageSource) (*exportService, *[]clipWrite) {
	var writes []clipWrite
	s := NewExportService(src).(*exportService)
	s.writeClipboard = func(f clipboard.Format, d []byte) error {
		writes = append(writes, clipWrite{f, d})
		return nil
	}
	return s, &writes
}

func TestExportService_Copy(t *testing.T) {
	data := samplePNG(t)
	s, writes := newExportForTest(staticImageSource{data: data, prompt: "  doge  "})

	s.CopyImage()
	s.CopyPrompt()
	require.Len(t, *writes, 2)
	assert.Equal(t, clipboard.FmtImage, (*writes)[0].format)
	assert.Equal(t, data, (*writes)[0].data)
	assert.Equal(t, clipboard.FmtText, (*writes)[1].format)
	assert.Equal(t, "doge", string((*writes)[1].data))
}

func TestExportService_NothingToCopy(t *testing.T) {
	s, writes := newExportForTest(staticImageSource{})
	s.CopyImage()
	s.CopyPrompt()
	assert.Empty(t, *writes)
}

func TestExportService_ClipboardFailureIsSwallowed(t *testing.T) {
	s := NewExportService(staticImageSource{data: []byte{1}, prompt: "p"}).(*exportService)
	s.writeClipboard = func(clipboard.Format, []byte) error { return assert.AnError }
	assert.NotPanics(t, s.CopyImage)
	assert.NotPanics(t, s.CopyPrompt)
}

func TestExportService_SaveImage(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.png")
	data := samplePNG(t)

	s, _ := newExportForTest(staticImageSource{data: data})
	s.saveDialog = func(context.Context) (string, error) { return target, nil }

	s.SaveImage()
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err), "no runtime context, nothing saved")

	s.Startup(context.Background())
	s.SaveImage()
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestExportService_SaveCancelled(t *testing.T) {
	s, _ := newExportForTest(staticImageSource{data: samplePNG(t)})
	called := false
	s.saveDialog = func(context.Context) (string, error) { called = true; return "", nil }
	s.Startup(context.Background())
	assert.NotPanics(t, s.SaveImage)
	assert.True(t, called)
}

func TestWriteImageFile_JPEG(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "out.JPG")
	require.NoError(t, WriteImageFile(target, samplePNG(t)))

	img, err := imaging.Open(target)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, raw[:2])
}

func TestWriteImageFile_Errors(t *testing.T) {
	assert.ErrorIs(t, WriteImageFile(filepath.Join(t.TempDir(), "a.png"), nil), ErrNoImageToExport)
	assert.Error(t, WriteImageFile(filepath.Join(t.TempDir(), "a.jpg"), []byte("not an image")))
}
