package commands

import (
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
	ErrUpdateProductCommandIsNotConstructed = errors.New(
		"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
	)
	ErrReplaceProductImageCommandIsNotConstructed = errors.New(
		"ReplaceProductImageCommand must be created via NewReplaceProductImageCommand constructor",
	)
	ErrSetProductActiveCommandIsNotConstructed = errors.New(
		"SetProductActiveCommand must be created via NewSetProductActiveCommand constructor",
	)
)

// ProductInput carries the editable product attributes as received. Price is a
// decimal literal such as "19.90".
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       string
	CategoryID  kernel.UUID
}

// CreateProductCommand adds an active product with its image. Admin only.
type CreateProductCommand struct {
	requester *access.Principal
	input     ProductInput
	image     Image

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(requester *access.Principal, input ProductInput, image Image) CreateProductCommand {
	return CreateProductCommand{requester: requester, input: input, image: image, guard: guard.NewConstructorGuard()}
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// UpdateProductCommand replaces the attributes of the product addressed by slug. Admin only.
type UpdateProductCommand struct {
	requester *access.Principal
	slug      string
	input     ProductInput

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(requester *access.Principal, slug string, input ProductInput) UpdateProductCommand {
	return UpdateProductCommand{requester: requester, slug: slug, input: input, guard: guard.NewConstructorGuard()}
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

// ReplaceProductImageCommand swaps the product image. Admin only.
type ReplaceProductImageCommand struct {
	requester *access.Principal
	slug      string
	image     Image

	guard guard.ConstructorGuard
}

func NewReplaceProductImageCommand(requester *access.Principal, slug string, image Image) ReplaceProductImageCommand {
	return ReplaceProductImageCommand{requester: requester, slug: slug, image: image, guard: guard.NewConstructorGuard()}
}

func (c ReplaceProductImageCommand) Validate() error {
	return c.guard.Validate(ErrReplaceProductImageCommandIsNotConstructed)
}

// SetProductActiveCommand activates or deactivates a product. Admin only.
type SetProductActiveCommand struct {
	requester *access.Principal
	slug      string
	active    bool

	guard guard.ConstructorGuard
}

func NewSetProductActiveCommand(requester *access.Principal, slug string, active bool) SetProductActiveCommand {
	return SetProductActiveCommand{requester: requester, slug: slug, active: active, guard: guard.NewConstructorGuard()}
}

func (c SetProductActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetProductActiveCommandIsNotConstructed)
}
