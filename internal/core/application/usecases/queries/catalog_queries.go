package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListCategoriesQueryIsNotConstructed = errors.New(
		"ListCategoriesQuery must be created via NewListCategoriesQuery constructor",
	)
	ErrGetCategoryQueryIsNotConstructed = errors.New(
		"GetCategoryQuery must be created via NewGetCategoryQuery constructor",
	)
	ErrGetProductQueryIsNotConstructed = errors.New(
		"GetProductQuery must be created via NewGetProductQuery constructor",
	)
	ErrListCategoryProductsQueryIsNotConstructed = errors.New(
		"ListCategoryProductsQuery must be created via NewListCategoryProductsQuery constructor",
	)
)

// Catalog reads are public and need no principal.

type ListCategoriesQuery struct {
	guard guard.ConstructorGuard
}

func NewListCategoriesQuery() ListCategoriesQuery {
	return ListCategoriesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListCategoriesQuery) Validate() error {
	return q.guard.Validate(ErrListCategoriesQueryIsNotConstructed)
}

type GetCategoryQuery struct {
	slug  string
	guard guard.ConstructorGuard
}

func NewGetCategoryQuery(slug string) GetCategoryQuery {
	return GetCategoryQuery{slug: slug, guard: guard.NewConstructorGuard()}
}

func (q GetCategoryQuery) Validate() error {
	return q.guard.Validate(ErrGetCategoryQueryIsNotConstructed)
}

type GetProductQuery struct {
	slug  string
	guard guard.ConstructorGuard
}

func NewGetProductQuery(slug string) GetProductQuery {
	return GetProductQuery{slug: slug, guard: guard.NewConstructorGuard()}
}

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

// ListCategoryProductsQuery lists the active products of a category. An unknown
// category yields an empty list.
type ListCategoryProductsQuery struct {
	categorySlug string
	guard        guard.ConstructorGuard
}

func NewListCategoryProductsQuery(categorySlug string) ListCategoryProductsQuery {
	return ListCategoryProductsQuery{categorySlug: categorySlug, guard: guard.NewConstructorGuard()}
}

func (q ListCategoryProductsQuery) Validate() error {
	return q.guard.Validate(ErrListCategoryProductsQueryIsNotConstructed)
}

type CategoryResponse struct {
	ID       kernel.UUID
	Name     string
	Slug     string
	ImageURL string
}

type ProductResponse struct {
	ID          kernel.UUID
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	CategoryID  kernel.UUID
	IsActive    bool
	ImageURL    string
}
