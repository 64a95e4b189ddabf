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

// CategoryCommandHandlers holds the admin-only write operations on categories.
// Stored images that end up unreferenced, because a write failed or an image was
// replaced or deleted, are removed.
type CategoryCommandHandlers struct {
	uowFactory CatalogUoWFactory
	images     imageKeeper
}

func NewCategoryCommandHandlers(uowFactory CatalogUoWFactory, storage ports.ImageStorage) CategoryCommandHandlers {
	return CategoryCommandHandlers{uowFactory: uowFactory, images: imageKeeper{storage: storage}}
}

// Create adds a category. A taken slug fails with errs.ErrObjectAlreadyExists.
func (h *CategoryCommandHandlers) Create(ctx context.Context, cmd CreateCategoryCommand) (*catalog.Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "create category"); err != nil {
		return nil, err
	}
	if err := cmd.image.Validate(); err != nil {
		return nil, err
	}

	slug, err := catalog.NormalizeSlug(cmd.slug)
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

	categoryRepo := uow.CategoryRepository()
	if err = ensureCategorySlugIsFree(ctx, categoryRepo, slug, nil); err != nil {
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

	c, err := catalog.NewCategory(kernel.NewUUID(), cmd.name, slug, url)
	if err != nil {
		return nil, err
	}

	if err = categoryRepo.Add(ctx, c); err != nil {
		return nil, errs.WrapInternal("create category", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit category", err)
	}
	committed = true

	return c, nil
}

// Update renames a category and changes its slug.
func (h *CategoryCommandHandlers) Update(ctx context.Context, cmd UpdateCategoryCommand) (*catalog.Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "update category"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	categoryRepo := uow.CategoryRepository()
	c, err := categoryRepo.GetBySlug(ctx, cmd.slug)
	if err != nil {
		return nil, errs.WrapInternal("load category", err)
	}

	if err = c.Rename(cmd.newName, cmd.newSlug); err != nil {
		return nil, err
	}

	id := c.ID()
	if err = ensureCategorySlugIsFree(ctx, categoryRepo, c.Slug(), &id); err != nil {
		return nil, err
	}

	if err = categoryRepo.Update(ctx, c); err != nil {
		return nil, errs.WrapInternal("update category", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit category", err)
	}

	return c, nil
}

// ReplaceImage stores a new image and removes the old file after commit.
func (h *CategoryCommandHandlers) ReplaceImage(
	ctx context.Context,
	cmd ReplaceCategoryImageCommand,
) (*catalog.Category, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.RequireAdmin(cmd.requester, "replace category image"); err != nil {
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

	categoryRepo := uow.CategoryRepository()
	c, err := categoryRepo.GetBySlug(ctx, cmd.slug)
	if err != nil {
		return nil, errs.WrapInternal("load category", err)
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

	previous, err := c.ReplaceImage(url)
	if err != nil {
		return nil, err
	}

	if err = categoryRepo.Update(ctx, c); err != nil {
		return nil, errs.WrapInternal("update category", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewInternalError("commit category", err)
	}
	committed = true
	h.images.discard(ctx, previous)

	return c, nil
}

// Delete removes a category without products, then its image.
func (h *CategoryCommandHandlers) Delete(ctx context.Context, cmd DeleteCategoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := access.RequireAdmin(cmd.requester, "delete category"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.WrapInternal("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	categoryRepo := uow.CategoryRepository()
	c, err := categoryRepo.GetBySlug(ctx, cmd.slug)
	if err != nil {
		return errs.WrapInternal("load category", err)
	}

	if err = categoryRepo.Delete(ctx, c.ID()); err != nil {
		return errs.WrapInternal("delete category", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewInternalError("commit category", err)
	}
	h.images.discard(ctx, c.ImageURL())

	return nil
}

// ensureCategorySlugIsFree fails when slug belongs to a category other than self.
func ensureCategorySlugIsFree(ctx context.Context, repo ports.CategoryRepository, slug string, self *kernel.UUID) error {
	existing, err := repo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	case err != nil:
		return errs.WrapInternal("check slug", err)
	case self != nil && existing.ID().IsEqual(*self):
		return nil
	default:
		return errs.NewObjectAlreadyExistsError("slug", slug)
	}
}
