// Package filestore keeps uploaded images in a local directory that the HTTP
// server exposes under a fixed URL prefix.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// URLPrefix is where the HTTP server mounts the upload directory.
	URLPrefix = "/uploads/"

	DefaultMaxImageSize = 5 << 20
)

var _ ports.ImageStorage = (*LocalStorage)(nil)

// LocalStorage writes each image under a random name, keeping the original extension.
type LocalStorage struct {
	dir     string
	maxSize int64
}

// NewLocalStorage creates dir when missing. maxSize <= 0 selects DefaultMaxImageSize.
func NewLocalStorage(dir string, maxSize int64) (*LocalStorage, error) {
	if dir == "" {
		return nil, errs.NewValueIsRequiredError("upload dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &LocalStorage{dir: dir, maxSize: maxSize}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(_ context.Context, filename, contentType string, content io.Reader) (string, error) {
	name := uuid.NewString() + extensionFor(filename, contentType)
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	written, copyErr := io.Copy(f, io.LimitReader(content, s.maxSize+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("write image file: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("close image file: %w", closeErr)
	case written > s.maxSize:
		_ = os.Remove(target)
		return "", errs.NewValueIsOutOfRangeError("image size", written, 1, s.maxSize)
	case written == 0:
		_ = os.Remove(target)
		return "", errs.NewValueIsRequiredError("image")
	}

	return URLPrefix + name, nil
}

// Delete removes the file behind url. Urls outside URLPrefix and missing files are ignored.
func (s *LocalStorage) Delete(_ context.Context, url string) error {
	name, ok := nameFromURL(url)
	if !ok {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

func (s *LocalStorage) List(_ context.Context) ([]ports.StoredImage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list upload dir: %w", err)
	}

	images := make([]ports.StoredImage, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		images = append(images, ports.StoredImage{
			URL:        URLPrefix + entry.Name(),
			ModifiedAt: info.ModTime().UTC(),
		})
	}
	return images, nil
}

func nameFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, URLPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, URLPrefix)
	if name == "" || name != path.Base(name) || name == "." || name == ".." {
		return "", false
	}
	return name, true
}

func extensionFor(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && len(ext) <= 6 && !strings.ContainsAny(ext, `/\`) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
