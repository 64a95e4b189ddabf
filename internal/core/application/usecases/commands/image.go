package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// Image is an uploaded file headed for ImageStorage.
type Image struct {
	filename    string
	contentType string
	content     io.Reader
}

func NewImage(filename, contentType string, content io.Reader) Image {
	return Image{filename: filename, contentType: contentType, content: content}
}

// Validate requires content with an image/* content type.
func (i Image) Validate() error {
	if i.content == nil {
		return errs.NewValueIsRequiredError("image")
	}
	if !strings.HasPrefix(strings.ToLower(i.contentType), "image/") {
		return errs.NewValueIsInvalidErrorWithCause("image is invalid", fmt.Errorf("%q is not an image content type", i.contentType))
	}
	return nil
}

// imageKeeper stores uploads and removes files that no row references any more.
// Removal failures are ignored; the upload sweeper job collects leftovers.
type imageKeeper struct {
	storage ports.ImageStorage
}

func (k imageKeeper) store(ctx context.Context, img Image) (string, error) {
	url, err := k.storage.Save(ctx, img.filename, img.contentType, img.content)
	if err != nil {
		return "", errs.WrapInternal("store image", err)
	}
	return url, nil
}

func (k imageKeeper) discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	_ = k.storage.Delete(context.WithoutCancel(ctx), url)
}
