package services

import (
	"fmt"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// Line is a requested (product, quantity) pair.
type Line struct {
	ProductID kernel.UUID
	Quantity  int
}

// OrderPricer is a domain service that materializes order items from requested
// lines, copying each product's current price into its item.
//
// Business rules, checked per line in request order:
//   - The product must exist (not found otherwise)
//   - The product must be active (invalid otherwise)
//   - The quantity must be between 1 and order.MaxQuantity (invalid otherwise)
//
// Example usage:
//
//	pricer := services.NewOrderPricer()
//	products, _ := repo.FindByIDs(ctx, services.ProductIDs(lines))
//	items, err := pricer.Price(lines, products)
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, items, time.Now())
type OrderPricer struct{}

func NewOrderPricer() OrderPricer {
	return OrderPricer{}
}

// Price returns one item per line, in line order. products is keyed by product id string.
func (OrderPricer) Price(lines []Line, products map[string]*catalog.Product) ([]*order.Item, error) {
	if len(lines) == 0 {
		return nil, order.ErrOrderHasNoItems
	}

	items := make([]*order.Item, 0, len(lines))
	for idx, line := range lines {
		product, ok := products[line.ProductID.String()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", line.ProductID)
		}
		if !product.IsActive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"product is invalid",
				fmt.Errorf("product %s is not active", product.ID()),
			)
		}
		if line.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid",
				fmt.Errorf("line %d: %d is not greater than 0", idx, line.Quantity),
			)
		}
		if line.Quantity > order.MaxQuantity {
			return nil, errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, order.MaxQuantity)
		}

		item, err := order.NewItem(product.ID(), line.Quantity, product.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// ProductIDs returns the distinct product ids referenced by lines, in first-seen order.
func ProductIDs(lines []Line) []kernel.UUID {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		key := line.ProductID.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
