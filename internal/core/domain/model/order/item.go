package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// MaxQuantity is the largest quantity a single line item may carry.
const MaxQuantity = 1_000_000

// Item is one order line. Price is the unit price captured from the catalog
// when the order was placed.
type Item struct {
	id            kernel.UUID
	productID     kernel.UUID
	quantity      int
	price         kernel.Money
	isConstructed bool
}

// NewItem creates a line item with a fresh identifier.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.00")
//	item, err := order.NewItem(product.ID(), 2, price)
//	// item.Subtotal() == 20.00
func NewItem(productID kernel.UUID, quantity int, price kernel.Money) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), productID, quantity, price)
}

// RestoreItem rebuilds a persisted line item and re-checks its invariants.
func RestoreItem(id, productID kernel.UUID, quantity int, price kernel.Money) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setPrice(price),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

func (i *Item) Quantity() int {
	return i.quantity
}

// Price returns the unit price snapshot.
func (i *Item) Price() kernel.Money {
	return i.price
}

// Subtotal returns quantity * price.
func (i *Item) Subtotal() kernel.Money {
	return i.price.Times(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product id", err)
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}
