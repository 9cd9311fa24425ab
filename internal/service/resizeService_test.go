package service

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idr4n/image-resizer-go/internal/entity"
	"github.com/idr4n/image-resizer-go/internal/pkg/processor"
	"github.com/idr4n/image-resizer-go/internal/pkg/storage"
)

func newService(confirm ConfirmFunc) ResizeService {
	return NewResizeService(storage.NewFileStorage(), processor.NewImageProcessor("lanczos", 90), confirm)
}

// writeTestImage saves a solid-color image at path in the format implied by
// its extension.
func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func decodeDimensions(t *testing.T, path string) (int, int, string) {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	require.NoError(t, err)
	return cfg.Width, cfg.Height, format
}

func TestResizeWidthOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 100, 80)

	result, err := newService(nil).Resize(&entity.InvocationRequest{Input: input, Width: 50})

	require.NoError(t, err)
	assert.Equal(t, 50, result.Width)
	assert.Equal(t, 40, result.Height)
	assert.Equal(t, entity.PNG, result.Format)
	assert.Equal(t, filepath.Join(dir, "in_resized.png"), result.Path)

	width, height, format := decodeDimensions(t, result.Path)
	assert.Equal(t, 50, width)
	assert.Equal(t, 40, height)
	assert.Equal(t, "png", format)
}

func TestResizeHeightOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.jpg")
	writeTestImage(t, input, 200, 100)

	result, err := newService(nil).Resize(&entity.InvocationRequest{Input: input, Height: 50})

	require.NoError(t, err)
	assert.Equal(t, 100, result.Width)
	assert.Equal(t, 50, result.Height)
	assert.Equal(t, entity.JPEG, result.Format)
}

func TestResizeConvertsFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 100, 80)

	result, err := newService(nil).Resize(&entity.InvocationRequest{
		Input:  input,
		Width:  50,
		Format: entity.JPEG,
		Output: "converted.png", // extension loses to --format
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "converted.jpg"), result.Path)

	_, _, format := decodeDimensions(t, result.Path)
	assert.Equal(t, "jpeg", format)
}

func TestResizeToOriginalDimensions(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 64, 48)

	result, err := newService(nil).Resize(&entity.InvocationRequest{Input: input, Width: 64, Height: 48})

	require.NoError(t, err)
	width, height, _ := decodeDimensions(t, result.Path)
	assert.Equal(t, 64, width)
	assert.Equal(t, 48, height)
}

func TestResizeMissingDimensions(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 100, 80)

	_, err := newService(nil).Resize(&entity.InvocationRequest{Input: input})

	assert.ErrorIs(t, err, entity.ErrMissingDimensions)
}

func TestResizeMissingInput(t *testing.T) {
	_, err := newService(nil).Resize(&entity.InvocationRequest{
		Input: filepath.Join(t.TempDir(), "nope.png"),
		Width: 10,
	})

	assert.ErrorIs(t, err, entity.ErrInputNotFile)
}

func TestResizeNonImageInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(input, []byte("definitely not pixels"), 0644))

	_, err := newService(nil).Resize(&entity.InvocationRequest{Input: input, Width: 10})

	assert.ErrorIs(t, err, entity.ErrDecode)
}

func TestResizeOverwriteDeclined(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 100, 80)

	existing := filepath.Join(dir, "in_resized.png")
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0644))

	decline := func(string) bool { return false }
	_, err := newService(decline).Resize(&entity.InvocationRequest{Input: input, Width: 50})

	assert.ErrorIs(t, err, entity.ErrAborted)

	data, readErr := os.ReadFile(existing)
	require.NoError(t, readErr)
	assert.Equal(t, "keep me", string(data))
}

func TestResizeOverwriteConfirmed(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 100, 80)

	existing := filepath.Join(dir, "in_resized.png")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	var asked string
	confirm := func(path string) bool {
		asked = path
		return true
	}
	result, err := newService(confirm).Resize(&entity.InvocationRequest{Input: input, Width: 50})

	require.NoError(t, err)
	assert.Equal(t, existing, asked)

	width, height, _ := decodeDimensions(t, result.Path)
	assert.Equal(t, 50, width)
	assert.Equal(t, 40, height)
}

func TestResizeOverwriteFlagSkipsPrompt(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	writeTestImage(t, input, 100, 80)

	existing := filepath.Join(dir, "in_resized.png")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	// nil confirm would abort if the prompt were reached
	result, err := newService(nil).Resize(&entity.InvocationRequest{
		Input:     input,
		Width:     50,
		Overwrite: true,
	})

	require.NoError(t, err)
	assert.Equal(t, existing, result.Path)
}
