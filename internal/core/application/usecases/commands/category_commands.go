package commands

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateCategoryCommandIsNotConstructed = errors.New(
		"CreateCategoryCommand must be created via NewCreateCategoryCommand constructor",
	)
	ErrUpdateCategoryCommandIsNotConstructed = errors.New(
		"UpdateCategoryCommand must be created via NewUpdateCategoryCommand constructor",
	)
	ErrReplaceCategoryImageCommandIsNotConstructed = errors.New(
		"ReplaceCategoryImageCommand must be created via NewReplaceCategoryImageCommand constructor",
	)
	ErrDeleteCategoryCommandIsNotConstructed = errors.New(
		"DeleteCategoryCommand must be created via NewDeleteCategoryCommand constructor",
	)
)

// CreateCategoryCommand adds a category with its image. Admin only.
type CreateCategoryCommand struct {
	requester *access.Principal
	name      string
	slug      string
	image     Image

	guard guard.ConstructorGuard
}

func NewCreateCategoryCommand(requester *access.Principal, name, slug string, image Image) CreateCategoryCommand {
	return CreateCategoryCommand{
		requester: requester,
		name:      name,
		slug:      slug,
		image:     image,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c CreateCategoryCommand) Validate() error {
	return c.guard.Validate(ErrCreateCategoryCommandIsNotConstructed)
}

// UpdateCategoryCommand renames the category addressed by slug. Admin only.
type UpdateCategoryCommand struct {
	requester *access.Principal
	slug      string
	newName   string
	newSlug   string

	guard guard.ConstructorGuard
}

func NewUpdateCategoryCommand(requester *access.Principal, slug, newName, newSlug string) UpdateCategoryCommand {
	return UpdateCategoryCommand{
		requester: requester,
		slug:      slug,
		newName:   newName,
		newSlug:   newSlug,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c UpdateCategoryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCategoryCommandIsNotConstructed)
}

// ReplaceCategoryImageCommand swaps the category image. Admin only.
type ReplaceCategoryImageCommand struct {
	requester *access.Principal
	slug      string
	image     Image

	guard guard.ConstructorGuard
}

func NewReplaceCategoryImageCommand(requester *access.Principal, slug string, image Image) ReplaceCategoryImageCommand {
	return ReplaceCategoryImageCommand{
		requester: requester,
		slug:      slug,
		image:     image,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c ReplaceCategoryImageCommand) Validate() error {
	return c.guard.Validate(ErrReplaceCategoryImageCommandIsNotConstructed)
}

// DeleteCategoryCommand removes an empty category and its image. Admin only.
type DeleteCategoryCommand struct {
	requester *access.Principal
	slug      string

	guard guard.ConstructorGuard
}

func NewDeleteCategoryCommand(requester *access.Principal, slug string) DeleteCategoryCommand {
	return DeleteCategoryCommand{requester: requester, slug: slug, guard: guard.NewConstructorGuard()}
}

func (c DeleteCategoryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCategoryCommandIsNotConstructed)
}
