package catalog

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
)

var ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory constructor")

// Category groups products and is addressed by its unique slug.
type Category struct {
	id            kernel.UUID
	name          string
	slug          string
	imageURL      string
	isConstructed bool
}

// NewCategory creates a category. imageURL is the public URL of an already stored image.
func NewCategory(id kernel.UUID, name, slug, imageURL string) (*Category, error) {
	c := &Category{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSlug(slug),
		c.setImageURL(imageURL),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCategory rebuilds a persisted category.
func RestoreCategory(id kernel.UUID, name, slug, imageURL string) (*Category, error) {
	return NewCategory(id, name, slug, imageURL)
}

func (c *Category) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCategoryIsNotConstructed
	}
	return nil
}

func (c *Category) ID() kernel.UUID  { return c.id }
func (c *Category) Name() string     { return c.name }
func (c *Category) Slug() string     { return c.slug }
func (c *Category) ImageURL() string { return c.imageURL }

// Rename changes name and slug together; nothing changes on error.
func (c *Category) Rename(name, slug string) error {
	next := *c
	if err := errors.Join(next.setName(name), next.setSlug(slug)); err != nil {
		return err
	}
	*c = next
	return nil
}

// ReplaceImage sets a new image URL and returns the previous one.
func (c *Category) ReplaceImage(imageURL string) (string, error) {
	previous := c.imageURL
	if err := c.setImageURL(imageURL); err != nil {
		return "", err
	}
	return previous, nil
}

func (c *Category) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Category) setName(name string) error {
	v, err := requireText("name", name)
	if err != nil {
		return err
	}
	c.name = v
	return nil
}

func (c *Category) setSlug(slug string) error {
	v, err := NormalizeSlug(slug)
	if err != nil {
		return err
	}
	c.slug = v
	return nil
}

func (c *Category) setImageURL(imageURL string) error {
	v, err := requireText("image url", imageURL)
	if err != nil {
		return err
	}
	c.imageURL = v
	return nil
}
