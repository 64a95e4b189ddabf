package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	// Add fails with errs.ErrObjectAlreadyExists when the slug is taken.
	Add(ctx context.Context, product *catalog.Product) error

	// Update fails with errs.ErrObjectAlreadyExists when the new slug is taken.
	Update(ctx context.Context, product *catalog.Product) error

	GetBySlug(ctx context.Context, slug string) (*catalog.Product, error)

	// FindByIDs resolves ids in one round trip. Unknown ids are absent from the
	// result, which is keyed by the id string.
	FindByIDs(ctx context.Context, ids []kernel.UUID) (map[string]*catalog.Product, error)
}
