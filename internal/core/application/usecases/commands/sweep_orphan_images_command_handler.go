package commands

import (
	"context"
	"errors"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ReferencedImagesFunc returns the set of image URLs still used by a category or product.
type ReferencedImagesFunc func(ctx context.Context) (map[string]struct{}, error)

// SweepOrphanImagesCommandHandler deletes uploads left behind by failed or
// replaced writes. Files younger than the command's minimum age are kept so an
// upload whose transaction has not committed yet survives.
type SweepOrphanImagesCommandHandler struct {
	storage    ports.ImageStorage
	referenced ReferencedImagesFunc
}

func NewSweepOrphanImagesCommandHandler(
	storage ports.ImageStorage,
	referenced ReferencedImagesFunc,
) SweepOrphanImagesCommandHandler {
	return SweepOrphanImagesCommandHandler{storage: storage, referenced: referenced}
}

// Handle returns the number of removed files. Individual delete failures are
// joined into the returned error; the remaining files are still processed.
func (h *SweepOrphanImagesCommandHandler) Handle(ctx context.Context, cmd SweepOrphanImagesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stored, err := h.storage.List(ctx)
	if err != nil {
		return 0, errs.WrapInternal("list stored images", err)
	}

	refs, err := h.referenced(ctx)
	if err != nil {
		return 0, errs.WrapInternal("list referenced images", err)
	}

	cutoff := now().Add(-cmd.MinAge())
	removed := 0
	var failures []error
	for _, img := range stored {
		if _, ok := refs[img.URL]; ok || img.ModifiedAt.After(cutoff) {
			continue
		}
		if err := h.storage.Delete(ctx, img.URL); err != nil {
			failures = append(failures, err)
			continue
		}
		removed++
	}

	if len(failures) > 0 {
		return removed, errs.WrapInternal("delete orphan images", errors.Join(failures...))
	}
	return removed, nil
}
