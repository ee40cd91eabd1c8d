// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/dualsite/internal/model"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, createTestImage(width, height)))
	return buf.Bytes()
}

func TestProcessPNG(t *testing.T) {
	p := NewProcessor(t.TempDir())

	res, err := p.Process(bytes.NewReader(encodePNG(t, 40, 30)), "photo.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypePNG, res.MimeType)
	assert.Equal(t, ".png", res.Ext)
	assert.Equal(t, 40, res.Width)
	assert.Equal(t, 30, res.Height)
	assert.True(t, res.HasDimensions())
}

func TestProcessDetectsTypeFromContent(t *testing.T) {
	p := NewProcessor(t.TempDir())

	// declared as PDF, content is PNG
	res, err := p.Process(bytes.NewReader(encodePNG(t, 5, 5)), "file.pdf", model.MimeTypePDF)
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypePNG, res.MimeType)
}

func TestProcessPDF(t *testing.T) {
	p := NewProcessor(t.TempDir())

	res, err := p.Process(bytes.NewReader([]byte("%PDF-1.7\n%fake")), "doc.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypePDF, res.MimeType)
	assert.Equal(t, ".pdf", res.Ext)
	assert.False(t, res.HasDimensions())
}

func TestProcessSVG(t *testing.T) {
	p := NewProcessor(t.TempDir())
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`)

	res, err := p.Process(bytes.NewReader(svg), "logo.svg", "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypeSVG, res.MimeType)
	assert.Equal(t, ".svg", res.Ext)
}

func TestProcessRejectsUnsupported(t *testing.T) {
	p := NewProcessor(t.TempDir())

	tests := []struct {
		name string
		data []byte
		file string
	}{
		{"empty", nil, "a.png"},
		{"plain text", []byte("hello world"), "a.txt"},
		{"tiff", []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}, "a.tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Process(bytes.NewReader(tt.data), tt.file, "")
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	path, err := p.Save("abc.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abc.png"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	require.NoError(t, p.Remove("abc.png"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, p.Remove("abc.png"))
}

func TestSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	path, err := p.Save("../../escape.png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.png"), path)

	_, err = p.Save("..", []byte("x"))
	assert.Error(t, err)
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(20, 10)

	tests := []struct {
		orientation   int
		width, height int
	}{
		{1, 20, 10},
		{2, 20, 10},
		{3, 20, 10},
		{4, 20, 10},
		{5, 10, 20},
		{6, 10, 20},
		{7, 10, 20},
		{8, 10, 20},
		{0, 20, 10},
		{9, 20, 10},
	}
	for _, tt := range tests {
		out := applyOrientation(img, tt.orientation)
		require.NotNil(t, out)
		assert.Equal(t, tt.width, out.Bounds().Dx(), "orientation %d", tt.orientation)
		assert.Equal(t, tt.height, out.Bounds().Dy(), "orientation %d", tt.orientation)
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor(model.MimeTypeJPEG))
	assert.Equal(t, ".webp", extensionFor(model.MimeTypeWebP))
	assert.Equal(t, ".bin", extensionFor("application/zip"))
	assert.Equal(t, model.MimeTypeJPEG, outputMimeType(model.MimeTypeWebP))
	assert.Equal(t, model.MimeTypePNG, outputMimeType(model.MimeTypePNG))
}
