package catalog

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a sellable catalog entry. Its price is the live price; orders copy
// it into their items when placed.
type Product struct {
	id            kernel.UUID
	name          string
	slug          string
	description   string
	price         kernel.Money
	categoryID    kernel.UUID
	isActive      bool
	imageURL      string
	isConstructed bool
}

// ProductDetails are the editable attributes of a product.
type ProductDetails struct {
	Name        string
	Slug        string
	Description string
	Price       kernel.Money
	CategoryID  kernel.UUID
}

// NewProduct creates an active product without an image.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("49.90")
//	p, err := catalog.NewProduct(kernel.NewUUID(), catalog.ProductDetails{
//	    Name: "Trail shoe", Slug: "trail-shoe", Description: "Light", Price: price, CategoryID: shoes.ID(),
//	})
func NewProduct(id kernel.UUID, details ProductDetails) (*Product, error) {
	return RestoreProduct(id, details, true, "")
}

// RestoreProduct rebuilds a persisted product. imageURL may be empty.
func RestoreProduct(id kernel.UUID, details ProductDetails, isActive bool, imageURL string) (*Product, error) {
	p := &Product{isActive: isActive, imageURL: imageURL, isConstructed: true}

	if err := errors.Join(p.setID(id), p.setDetails(details)); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID         { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) Slug() string            { return p.slug }
func (p *Product) Description() string     { return p.description }
func (p *Product) Price() kernel.Money     { return p.price }
func (p *Product) CategoryID() kernel.UUID { return p.categoryID }
func (p *Product) IsActive() bool          { return p.isActive }
func (p *Product) ImageURL() string        { return p.imageURL }

// Update replaces the editable attributes; nothing changes on error.
func (p *Product) Update(details ProductDetails) error {
	next := *p
	if err := next.setDetails(details); err != nil {
		return err
	}
	*p = next
	return nil
}

func (p *Product) Activate() {
	p.isActive = true
}

func (p *Product) Deactivate() {
	p.isActive = false
}

// ReplaceImage sets a new image URL and returns the previous one, possibly empty.
func (p *Product) ReplaceImage(imageURL string) (string, error) {
	v, err := requireText("image url", imageURL)
	if err != nil {
		return "", err
	}
	previous := p.imageURL
	p.imageURL = v
	return previous, nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setDetails(d ProductDetails) error {
	name, nameErr := requireText("name", d.Name)
	slug, slugErr := NormalizeSlug(d.Slug)
	description, descErr := requireText("description", d.Description)

	var priceErr error
	if err := d.Price.Validate(); err != nil {
		priceErr = err
	} else if !d.Price.IsPositive() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is not greater than 0", d.Price))
	}

	var categoryErr error
	if err := d.CategoryID.Validate(); err != nil {
		categoryErr = errs.NewValueIsRequiredErrorWithCause("category id", err)
	}

	if err := errors.Join(nameErr, slugErr, descErr, priceErr, categoryErr); err != nil {
		return err
	}

	p.name = name
	p.slug = slug
	p.description = description
	p.price = d.Price
	p.categoryID = d.CategoryID
	return nil
}
