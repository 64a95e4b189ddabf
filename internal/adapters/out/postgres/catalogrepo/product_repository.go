package catalogrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormProductRepository) Add(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	if err := r.db.WithContext(ctx).Omit("Category").Create(&dto).Error; err != nil {
		return slugConflict(err, dto.Slug)
	}

	r.tracker.TrackAggregate(product.ID(), product)
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":        dto.Name,
			"slug":        dto.Slug,
			"description": dto.Description,
			"price":       dto.Price,
			"category_id": dto.CategoryID,
			"is_active":   dto.IsActive,
			"image_url":   dto.ImageURL,
		})
	if result.Error != nil {
		return slugConflict(result.Error, dto.Slug)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", product.ID())
	}

	r.tracker.TrackAggregate(product.ID(), product)
	return nil
}

func (r *GormProductRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", slug)
		}
		return nil, err
	}

	return productToDomain(dto)
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []kernel.UUID) (map[string]*catalog.Product, error) {
	found := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", keys).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		p, err := productToDomain(dto)
		if err != nil {
			return nil, err
		}
		found[p.ID().String()] = p
	}

	return found, nil
}
