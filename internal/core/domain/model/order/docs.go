// Package order provides the Order aggregate root of the storefront: a buyer's
// purchase with its line items and its status lifecycle.
//
// The package includes:
//   - Order: the aggregate root owning identity, buyer, items, total and status
//   - Item: a line item holding a frozen unit price snapshot
//   - Status: a three-state machine (Open, Canceled, Delivered)
//   - PlacedEvent, CanceledEvent, DeliveredEvent: domain events raised by the aggregate
//
// Key business rules:
//   - An order always has at least one item
//   - The total is the sum of quantity * price over the items and is never set directly
//   - Item prices are copied from the catalog when the order is placed and never change
//   - Open -> Canceled, Open or Canceled -> Delivered; nothing leaves Delivered
//   - Canceling a canceled order and delivering a delivered order are no-ops
package order
