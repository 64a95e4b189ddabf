package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveListDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, 0)
	require.NoError(t, err)

	url, err := storage.Save(ctx, "Cover.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, URLPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"))

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	images, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, url, images[0].URL)

	require.NoError(t, storage.Delete(ctx, url))
	images, err = storage.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)

	assert.NoError(t, storage.Delete(ctx, url), "deleting twice is harmless")
}

func TestLocalStorage_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("too large", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewLocalStorage(dir, 4)
		require.NoError(t, err)

		_, err = storage.Save(ctx, "a.png", "image/png", bytes.NewReader([]byte("12345")))
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "rejected file is removed")
	})

	t.Run("empty", func(t *testing.T) {
		storage, err := NewLocalStorage(t.TempDir(), 0)
		require.NoError(t, err)

		_, err = storage.Save(ctx, "a.png", "image/png", strings.NewReader(""))
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("extension from content type", func(t *testing.T) {
		storage, err := NewLocalStorage(t.TempDir(), 0)
		require.NoError(t, err)

		url, err := storage.Save(ctx, "blob", "image/gif", strings.NewReader("gif"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(url, ".gif"))
	})
}

func TestLocalStorage_DeleteIgnoresForeignURLs(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	outside := filepath.Join(filepath.Dir(dir), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	storage, err := NewLocalStorage(dir, 0)
	require.NoError(t, err)

	for _, url := range []string{"", "https://cdn/x.png", URLPrefix + "../keep.txt", URLPrefix} {
		assert.NoError(t, storage.Delete(ctx, url), url)
	}

	_, err = os.Stat(outside)
	assert.NoError(t, err, "files outside the upload dir are untouched")
}

func TestNewLocalStorage(t *testing.T) {
	_, err := NewLocalStorage("", 0)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	nested := filepath.Join(t.TempDir(), "a", "b")
	_, err = NewLocalStorage(nested, 0)
	require.NoError(t, err)
	assert.DirExists(t, nested)
}
