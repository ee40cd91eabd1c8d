// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypeSVG  = "image/svg+xml"
	MimeTypePDF  = "application/pdf"
)

// Media list filters
const (
	MediaFilterImage    = "image"
	MediaFilterDocument = "document"
)

var supportedMimeTypes = map[string]bool{
	MimeTypeJPEG: true,
	MimeTypePNG:  true,
	MimeTypeGIF:  true,
	MimeTypeWebP: true,
	MimeTypeSVG:  true,
	MimeTypePDF:  true,
}

// IsSupportedMimeType reports whether uploads of mimeType are accepted.
func IsSupportedMimeType(mimeType string) bool {
	return supportedMimeTypes[mimeType]
}

// IsRasterImage reports whether mimeType is a decodable raster image.
func IsRasterImage(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	}
	return false
}

// IsImageMimeType reports whether mimeType is any image type.
func IsImageMimeType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
