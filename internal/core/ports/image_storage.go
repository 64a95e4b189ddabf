package ports

import (
	"context"
	"io"
	"time"
)

// StoredImage describes a file kept by an ImageStorage.
type StoredImage struct {
	URL        string
	ModifiedAt time.Time
}

// ImageStorage keeps uploaded images and serves them under public URLs.
type ImageStorage interface {
	// Save stores the content under a generated name and returns its public URL.
	Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error)
	// Delete removes the file behind url. Unknown urls are ignored.
	Delete(ctx context.Context, url string) error
	List(ctx context.Context) ([]StoredImage, error)
}
