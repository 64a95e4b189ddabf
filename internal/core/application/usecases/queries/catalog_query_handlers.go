package queries

import (
	"context"
	"database/sql"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogQueryHandlers serves the public catalog reads.
type CatalogQueryHandlers struct {
	db *gorm.DB
}

func NewCatalogQueryHandlers(db *gorm.DB) CatalogQueryHandlers {
	return CatalogQueryHandlers{db: db}
}

// ListCategories returns all categories ordered by name.
func (h CatalogQueryHandlers) ListCategories(ctx context.Context, query ListCategoriesQuery) ([]CategoryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	categories, err := h.scanCategories(ctx, `
		SELECT id, name, slug, image_url
		FROM categories
		ORDER BY name, slug
	`)
	if err != nil {
		return nil, errs.NewInternalError("list categories", err)
	}
	return categories, nil
}

func (h CatalogQueryHandlers) GetCategory(ctx context.Context, query GetCategoryQuery) (CategoryResponse, error) {
	if err := query.Validate(); err != nil {
		return CategoryResponse{}, err
	}

	slug := normalizeSlug(query.slug)
	categories, err := h.scanCategories(ctx, `
		SELECT id, name, slug, image_url
		FROM categories
		WHERE slug = ?
	`, slug)
	if err != nil {
		return CategoryResponse{}, errs.NewInternalError("read category", err)
	}
	if len(categories) == 0 {
		return CategoryResponse{}, errs.NewObjectNotFoundError("category", slug)
	}
	return categories[0], nil
}

func (h CatalogQueryHandlers) GetProduct(ctx context.Context, query GetProductQuery) (ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return ProductResponse{}, err
	}

	slug := normalizeSlug(query.slug)
	products, err := h.scanProducts(ctx, `
		SELECT id, name, slug, description, price, category_id, is_active, image_url
		FROM products
		WHERE slug = ?
	`, slug)
	if err != nil {
		return ProductResponse{}, errs.NewInternalError("read product", err)
	}
	if len(products) == 0 {
		return ProductResponse{}, errs.NewObjectNotFoundError("product", slug)
	}
	return products[0], nil
}

func (h CatalogQueryHandlers) ListCategoryProducts(
	ctx context.Context,
	query ListCategoryProductsQuery,
) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products, err := h.scanProducts(ctx, `
		SELECT p.id, p.name, p.slug, p.description, p.price, p.category_id, p.is_active, p.image_url
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE c.slug = ? AND p.is_active = ?
		ORDER BY p.name, p.slug
	`, normalizeSlug(query.categorySlug), true)
	if err != nil {
		return nil, errs.NewInternalError("list products", err)
	}
	return products, nil
}

func (h CatalogQueryHandlers) scanCategories(ctx context.Context, query string, args ...any) ([]CategoryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]CategoryResponse, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			resp CategoryResponse
		)
		if err = rows.Scan(&id, &resp.Name, &resp.Slug, &resp.ImageURL); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		categories = append(categories, resp)
	}

	return categories, rows.Err()
}

func (h CatalogQueryHandlers) scanProducts(ctx context.Context, query string, args ...any) ([]ProductResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductResponse, 0)
	for rows.Next() {
		var (
			id, categoryID uuid.UUID
			imageURL       sql.NullString
			resp           ProductResponse
		)
		if err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Slug,
			&resp.Description,
			&resp.Price,
			&categoryID,
			&resp.IsActive,
			&imageURL,
		); err != nil {
			return nil, err
		}
		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.CategoryID, err = kernel.UUIDFromGoogle(categoryID); err != nil {
			return nil, err
		}
		resp.ImageURL = imageURL.String
		products = append(products, resp)
	}

	return products, rows.Err()
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
