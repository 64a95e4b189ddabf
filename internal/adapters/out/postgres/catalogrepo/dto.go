// Package catalogrepo persists categories and products. Slugs are unique per table
// and a category cannot be removed while products reference it.
package catalogrepo

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO represents the database structure for persisting categories.
type CategoryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Slug     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	ImageURL string    `gorm:"type:varchar(512);not null;default:''"`
}

// TableName specifies the database table name for category entities.
func (CategoryDTO) TableName() string {
	return "categories"
}

// ProductDTO represents the database structure for persisting products.
type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Slug        string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string          `gorm:"type:text;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    *CategoryDTO    `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	IsActive    bool            `gorm:"not null"`
	ImageURL    string          `gorm:"type:varchar(512);not null;default:''"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func categoryFromDomain(c *catalog.Category) CategoryDTO {
	return CategoryDTO{
		ID:       c.ID().Bytes(),
		Name:     c.Name(),
		Slug:     c.Slug(),
		ImageURL: c.ImageURL(),
	}
}

func categoryToDomain(dto CategoryDTO) (*catalog.Category, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	return catalog.RestoreCategory(id, dto.Name, dto.Slug, dto.ImageURL)
}

func productFromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID().Bytes(),
		Name:        p.Name(),
		Slug:        p.Slug(),
		Description: p.Description(),
		Price:       p.Price().Amount(),
		CategoryID:  p.CategoryID().Bytes(),
		IsActive:    p.IsActive(),
		ImageURL:    p.ImageURL(),
	}
}

func productToDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	categoryID, err := kernel.UUIDFromGoogle(dto.CategoryID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return catalog.RestoreProduct(id, catalog.ProductDetails{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Price:       price,
		CategoryID:  categoryID,
	}, dto.IsActive, dto.ImageURL)
}
