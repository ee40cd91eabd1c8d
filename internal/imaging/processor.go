// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging inspects uploaded files and writes them to the uploads
// directory. Raster images are decoded to read their dimensions and are
// re-encoded with their EXIF orientation applied.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/util"
)

// JPEGQuality is used when re-encoding JPEG and WebP uploads.
const JPEGQuality = 90

// ErrUnsupportedType is returned for content outside the upload allow-list.
var ErrUnsupportedType = errors.New("unsupported file type")

// Result describes a processed upload ready to be written.
type Result struct {
	MimeType string
	Ext      string
	Width    int
	Height   int
	Data     []byte
}

// HasDimensions reports whether the upload was a decoded raster image.
func (r *Result) HasDimensions() bool {
	return r.Width > 0 && r.Height > 0
}

// Processor reads, normalizes and stores uploaded files.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a processor writing under uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// UploadDir returns the directory files are written to.
func (p *Processor) UploadDir() string {
	return p.uploadDir
}

// Process reads r, detects its type from content (falling back to the
// declared type for SVG) and, for raster images, applies EXIF orientation.
func (p *Processor) Process(r io.Reader, filename, declaredType string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedType)
	}

	mimeType := DetectMimeType(data, filename, declaredType)
	if !model.IsSupportedMimeType(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	res := &Result{MimeType: mimeType, Ext: extensionFor(mimeType), Data: data}
	if !model.IsRasterImage(mimeType) {
		return res, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if orientation := readExifOrientation(bytes.NewReader(data)); orientation > 1 {
		img = applyOrientation(img, orientation)
		if res.Data, err = encodeImage(img, mimeType); err != nil {
			return nil, fmt.Errorf("encoding image: %w", err)
		}
		res.MimeType = outputMimeType(mimeType)
		res.Ext = extensionFor(res.MimeType)
	}
	bounds := img.Bounds()
	res.Width, res.Height = bounds.Dx(), bounds.Dy()
	return res, nil
}

// Save writes data as name inside the upload directory.
func (p *Processor) Save(name string, data []byte) (string, error) {
	path, err := util.WithinDir(p.uploadDir, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return path, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (p *Processor) Remove(name string) error {
	path, err := util.WithinDir(p.uploadDir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload: %w", err)
	}
	return nil
}

// DetectMimeType sniffs data. SVG sniffs as XML or text, so the declared
// type or the .svg extension decides for those.
func DetectMimeType(data []byte, filename, declaredType string) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	// TIFF is rejected outright (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return contentType
	}
	if contentType == "text/xml" || contentType == "text/plain" {
		if declaredType == model.MimeTypeSVG || strings.EqualFold(filepath.Ext(filename), ".svg") {
			if bytes.Contains(data, []byte("<svg")) {
				return model.MimeTypeSVG
			}
		}
	}
	return contentType
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case model.MimeTypeJPEG:
		return ".jpg"
	case model.MimeTypePNG:
		return ".png"
	case model.MimeTypeGIF:
		return ".gif"
	case model.MimeTypeWebP:
		return ".webp"
	case model.MimeTypeSVG:
		return ".svg"
	case model.MimeTypePDF:
		return ".pdf"
	default:
		return ".bin"
	}
}

// outputMimeType is the type produced by encodeImage for mimeType.
func outputMimeType(mimeType string) string {
	if mimeType == model.MimeTypeWebP {
		return model.MimeTypeJPEG
	}
	return mimeType
}

// readExifOrientation returns 1 (normal) when the orientation is unknown.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes EXIF orientation 2..8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage re-encodes img. There is no pure Go WebP encoder, so WebP
// input is written as JPEG.
func encodeImage(img image.Image, mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch mimeType {
	case model.MimeTypePNG:
		err = png.Encode(&buf, img)
	case model.MimeTypeGIF:
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
