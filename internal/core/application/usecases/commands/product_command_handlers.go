package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/access"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ProductCommandHandlers holds the admin-only write operations on products.
type ProductCommandHandlers struct {
	uowFactory CatalogUoWFactory
	images     imageKeeper
}

func NewProductCommandHandlers(uowFactory CatalogUoWFactory, storage ports.ImageStorage) ProductCommandHandlers {
	return ProductCommandHandlers{uowFactory: uowFactory, images: imageKeeper{storage: storage}}
}

// Create adds an active product. The category must exist and the slug must be free.
func (h *ProductCommandHandlers) Create(ctx context.Context, cmd CreateProductCommand) (*catalog.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "create product"); err != nil {
		return nil, err
	}
	if err := cmd.image.Validate(); err != nil {
		return nil, err
	}

	details, err := productDetails(cmd.input)
	if err != nil {
		return nil, err
	}
	p, err := catalog.NewProduct(kernel.NewUUID(), details)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = h.checkReferences(ctx, uow, p); err != nil {
		return nil, err
	}

	url, err := h.images.store(ctx, cmd.image)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			h.images.discard(ctx, url)
		}
	}()

	if _, err = p.ReplaceImage(url); err != nil {
		return nil, err
	}

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, errs.WrapInternal("create product", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit product", err)
	}
	committed = true

	return p, nil
}

// Update replaces name, slug, description, price and category.
func (h *ProductCommandHandlers) Update(ctx context.Context, cmd UpdateProductCommand) (*catalog.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "update product"); err != nil {
		return nil, err
	}

	details, err := productDetails(cmd.input)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	p, err := productRepo.GetBySlug(ctx, cmd.slug)
	if err != nil {
		return nil, errs.WrapInternal("load product", err)
	}

	if err = p.Update(details); err != nil {
		return nil, err
	}

	if err = h.checkReferences(ctx, uow, p); err != nil {
		return nil, err
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return nil, errs.WrapInternal("update product", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit product", err)
	}

	return p, nil
}

// ReplaceImage stores a new image and removes the old file after commit.
func (h *ProductCommandHandlers) ReplaceImage(ctx context.Context, cmd ReplaceProductImageCommand) (*catalog.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "replace product image"); err != nil {
		return nil, err
	}
	if err := cmd.image.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	p, err := productRepo.GetBySlug(ctx, cmd.slug)
	if err != nil {
		return nil, errs.WrapInternal("load product", err)
	}

	url, err := h.images.store(ctx, cmd.image)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			h.images.discard(ctx, url)
		}
	}()

	previous, err := p.ReplaceImage(url)
	if err != nil {
		return nil, err
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return nil, errs.WrapInternal("update product", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit product", err)
	}
	committed = true
	h.images.discard(ctx, previous)

	return p, nil
}

// SetActive activates or deactivates a product. Existing orders are unaffected.
func (h *ProductCommandHandlers) SetActive(ctx context.Context, cmd SetProductActiveCommand) (*catalog.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "change product activity"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	p, err := productRepo.GetBySlug(ctx, cmd.slug)
	if err != nil {
		return nil, errs.WrapInternal("load product", err)
	}

	if cmd.active {
		p.Activate()
	} else {
		p.Deactivate()
	}

	if err = productRepo.Update(ctx, p); err != nil {
		return nil, errs.WrapInternal("update product", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit product", err)
	}

	return p, nil
}

// checkReferences verifies the category exists and the slug is not used by another product.
func (h *ProductCommandHandlers) checkReferences(ctx context.Context, uow CatalogUoW, p *catalog.Product) error {
	if _, err := uow.CategoryRepository().Get(ctx, p.CategoryID()); err != nil {
		return errs.WrapInternal("load category", err)
	}

	existing, err := uow.ProductRepository().GetBySlug(ctx, p.Slug())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	case err != nil:
		return errs.WrapInternal("check slug", err)
	case existing.ID().IsEqual(p.ID()):
		return nil
	default:
		return errs.NewObjectAlreadyExistsError("slug", p.Slug())
	}
}

func productDetails(in ProductInput) (catalog.ProductDetails, error) {
	price, err := kernel.MoneyFromString(in.Price)
	if err != nil {
		return catalog.ProductDetails{}, errs.NewValueIsInvalidErrorWithCause("price is invalid", err)
	}

	return catalog.ProductDetails{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       price,
		CategoryID:  in.CategoryID,
	}, nil
}
