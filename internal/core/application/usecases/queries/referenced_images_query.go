package queries

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrReferencedImagesQueryIsNotConstructed = errors.New(
	"ReferencedImagesQuery must be created via NewReferencedImagesQuery constructor",
)

// ReferencedImagesQuery collects every image URL still used by a category or product.
type ReferencedImagesQuery struct {
	guard guard.ConstructorGuard
}

func NewReferencedImagesQuery() ReferencedImagesQuery {
	return ReferencedImagesQuery{guard: guard.NewConstructorGuard()}
}

func (q ReferencedImagesQuery) Validate() error {
	return q.guard.Validate(ErrReferencedImagesQueryIsNotConstructed)
}

type ReferencedImagesQueryHandler struct {
	db *gorm.DB
}

func NewReferencedImagesQueryHandler(db *gorm.DB) ReferencedImagesQueryHandler {
	return ReferencedImagesQueryHandler{db: db}
}

// Handle returns the set of referenced URLs.
func (h ReferencedImagesQueryHandler) Handle(ctx context.Context, query ReferencedImagesQuery) (map[string]struct{}, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var urls []string
	err := h.db.WithContext(ctx).Raw(`
		SELECT image_url FROM categories
		UNION
		SELECT image_url FROM products WHERE image_url IS NOT NULL AND image_url <> ''
	`).Scan(&urls).Error
	if err != nil {
		return nil, errs.NewInternalError("list referenced images", err)
	}

	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return set, nil
}
