// Package ports defines the contracts between the storefront core and its
// infrastructure: repositories, the unit of work, security primitives, image
// storage and event publishing.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order and its items are always written together.
type OrderRepository interface {
	// Add persists a new order together with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and updated_at of an existing order. Items are immutable.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items. Fails with errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExistsForUser reports whether the user owns at least one order.
	ExistsForUser(ctx context.Context, userID kernel.UUID) (bool, error)
}
