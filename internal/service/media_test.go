// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/testutil"
)

func newMediaService(t *testing.T) (*Services, string) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	dir := t.TempDir()
	svc := New(db, &testutil.RecordingNotifier{}, testutil.DiscardLogger(), MediaConfig{
		UploadDir:     dir,
		URLPrefix:     "/uploads/",
		MaxUploadSize: 1 << 20,
	})
	return svc, dir
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestMediaUploadImage(t *testing.T) {
	svc, dir := newMediaService(t)
	ctx := context.Background()
	data := pngBytes(t, 12, 8)

	m, err := svc.Media.Upload(ctx, bytes.NewReader(data), UploadInput{
		Filename:    "../Team Foto.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Alt:         " Team ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Team Foto.png", m.OriginalName)
	assert.Equal(t, model.MimeTypePNG, m.MimeType)
	assert.True(t, strings.HasSuffix(m.Filename, ".png"))
	assert.Equal(t, "/uploads/"+m.Filename, m.URL)
	assert.Equal(t, "Team", m.Alt)
	require.NotNil(t, m.Width)
	assert.Equal(t, int64(12), *m.Width)
	assert.Equal(t, int64(8), *m.Height)

	_, err = os.Stat(filepath.Join(dir, m.Filename))
	require.NoError(t, err)
}

func TestMediaUploadRejects(t *testing.T) {
	svc, _ := newMediaService(t)
	ctx := context.Background()

	_, err := svc.Media.Upload(ctx, strings.NewReader("plain text"), UploadInput{Filename: "a.txt", Size: 10})
	assertValidation(t, err, "file")

	big := make([]byte, 10)
	_, err = svc.Media.Upload(ctx, bytes.NewReader(big), UploadInput{Filename: "a.png", Size: 2 << 20})
	assertValidation(t, err, "file")
}

func TestMediaListAndUpdate(t *testing.T) {
	svc, _ := newMediaService(t)
	ctx := context.Background()

	img, err := svc.Media.Upload(ctx, bytes.NewReader(pngBytes(t, 2, 2)), UploadInput{Filename: "logo.png"})
	require.NoError(t, err)
	_, err = svc.Media.Upload(ctx, strings.NewReader("%PDF-1.4 test"), UploadInput{Filename: "flyer.pdf"})
	require.NoError(t, err)

	items, total, err := svc.Media.List(ctx, MediaFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = svc.Media.List(ctx, MediaFilter{Type: model.MediaFilterDocument, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "flyer.pdf", items[0].OriginalName)
	assert.Nil(t, items[0].Width)

	_, total, err = svc.Media.List(ctx, MediaFilter{Search: "logo", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = svc.Media.List(ctx, MediaFilter{Type: "video"})
	assertValidation(t, err, "type")

	updated, err := svc.Media.Update(ctx, img.ID, MediaUpdate{Caption: ptr("Our logo")})
	require.NoError(t, err)
	assert.Equal(t, "Our logo", updated.Caption)
}

func TestMediaDeleteReportsUsage(t *testing.T) {
	svc, dir := newMediaService(t)
	ctx := context.Background()

	m, err := svc.Media.Upload(ctx, bytes.NewReader(pngBytes(t, 2, 2)), UploadInput{Filename: "hero.png"})
	require.NoError(t, err)

	_, err = svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("P"), FeaturedImage: ptr(m.URL)})
	require.NoError(t, err)
	_, err = svc.Jobs.Create(ctx, secondary, JobInput{Title: ptr("J"), Description: ptr(`<p><img src="` + m.URL + `"></p>`)})
	require.NoError(t, err)

	usage, err := svc.Media.Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, usage.InUse())
	assert.Equal(t, int64(1), usage.BlogPosts)
	assert.Equal(t, int64(1), usage.JobListings)

	_, err = os.Stat(filepath.Join(dir, m.Filename))
	assert.True(t, os.IsNotExist(err))
	_, err = svc.Media.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Media.Delete(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMediaDeleteMissingFileIsLoggedOnly(t *testing.T) {
	svc, dir := newMediaService(t)
	ctx := context.Background()

	m, err := svc.Media.Upload(ctx, bytes.NewReader(pngBytes(t, 2, 2)), UploadInput{Filename: "gone.png"})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, m.Filename)))

	usage, err := svc.Media.Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, usage.InUse())
}
