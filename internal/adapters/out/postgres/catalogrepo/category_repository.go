package catalogrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCategoryRepository implements ports.CategoryRepository using GORM.
type GormCategoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormCategoryRepository creates a new GORM category repository.
func NewGormCategoryRepository(db *gorm.DB, tracker aggregateTracker) *GormCategoryRepository {
	return &GormCategoryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCategoryRepository) Add(ctx context.Context, category *catalog.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(category)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return slugConflict(err, dto.Slug)
	}

	r.tracker.TrackAggregate(category.ID(), category)
	return nil
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *catalog.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	dto := categoryFromDomain(category)
	result := r.db.WithContext(ctx).
		Model(&CategoryDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":      dto.Name,
			"slug":      dto.Slug,
			"image_url": dto.ImageURL,
		})
	if result.Error != nil {
		return slugConflict(result.Error, dto.Slug)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("category", category.ID())
	}

	r.tracker.TrackAggregate(category.ID(), category)
	return nil
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	var products int64
	err := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("category_id = ?", id.Bytes()).
		Count(&products).Error
	if err != nil {
		return err
	}

	if products > 0 {
		return errs.NewInvalidStateError("category still has products")
	}

	result := r.db.WithContext(ctx).Delete(&CategoryDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("category", id)
	}

	return nil
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Category, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "category", id, "id = ?", id.Bytes())
}

func (r *GormCategoryRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	return r.first(ctx, "category", slug, "slug = ?", slug)
}

func (r *GormCategoryRepository) first(ctx context.Context, name string, key any, query string, args ...any) (*catalog.Category, error) {
	var dto CategoryDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, err
	}

	return categoryToDomain(dto)
}

// slugConflict translates a unique violation into ErrObjectAlreadyExists.
// The gorm.Config must set TranslateError for the violation to be recognised.
func slugConflict(err error, slug string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewObjectAlreadyExistsErrorWithCause("slug", slug, err)
	}
	return err
}
