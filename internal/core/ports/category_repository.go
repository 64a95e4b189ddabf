package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// CategoryRepository defines the persistence contract for categories.
type CategoryRepository interface {
	// Add fails with errs.ErrObjectAlreadyExists when the slug is taken.
	Add(ctx context.Context, category *catalog.Category) error
	Update(ctx context.Context, category *catalog.Category) error
	// Delete fails with errs.ErrInvalidState while products still reference the category.
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error)
	GetBySlug(ctx context.Context, slug string) (*catalog.Category, error)
}
