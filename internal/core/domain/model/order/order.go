package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// maxTotal is the largest total the orders table can store (numeric(12,2)).
var maxTotal = decimal.RequireFromString("9999999999.99")

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoItems is returned when an order would be created without line items.
	ErrOrderHasNoItems = errs.NewValueIsRequiredErrorWithCause(
		"items",
		errors.New("order must have at least one item"),
	)
)

// Order represents a buyer's purchase. It is the aggregate root that owns its
// line items and manages the lifecycle from placement to cancellation or delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and buyer
//   - Must have at least one item
//   - Total equals the sum of item subtotals, has no setter and fits numeric(12,2)
//   - Status transitions follow the rules of Status
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// userID is the buyer; immutable after creation
	userID kernel.UUID

	// items are the line items with their price snapshots
	items []*Item

	// total is derived from items
	total kernel.Money

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// domainEvents are raised by mutations and drained after commit
	domainEvents []kernel.DomainEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder places a new order in Open status and raises PlacedEvent.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - userID: The buyer (must be valid UUID)
//   - items: Line items with their price snapshots (at least one)
//   - now: Creation time, used for both created and updated timestamps
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10")
//	item, _ := order.NewItem(productID, 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, []*order.Item{item}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	// o.Total().String() == "20.00", o.Status() == order.Open
func NewOrder(id, userID kernel.UUID, items []*Item, now time.Time) (*Order, error) {
	o := &Order{
		status:        Open,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.raise(PlacedEvent{
		event:  newEvent(o.id, now),
		UserID: o.userID,
		Total:  o.total,
		Items:  len(o.items),
	})

	return o, nil
}

// RestoreOrder rebuilds an order loaded from persistence. It raises no events and
// rejects a stored total that disagrees with the stored items.
func RestoreOrder(
	id, userID kernel.UUID,
	status Status,
	total kernel.Money,
	items []*Item,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setStatus(status),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if !o.total.IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total is invalid",
			fmt.Errorf("stored %s does not match items sum %s", total, o.total),
		)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the buyer's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Items returns a copy of the item list.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Cancel moves the order to Canceled and raises CanceledEvent.
//
// Canceling a canceled order changes nothing. Canceling a delivered order fails
// with an invalid state error.
//
// Example:
//
//	if err := o.Cancel(time.Now()); err != nil {
//	    // errors.Is(err, errs.ErrInvalidState) for delivered orders
//	}
func (o *Order) Cancel(at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	if newStatus == o.status {
		return nil
	}

	o.status = newStatus
	o.updatedAt = at
	o.raise(CanceledEvent{event: newEvent(o.id, at), UserID: o.userID})
	return nil
}

// MarkDelivered moves an open or canceled order to Delivered and raises
// DeliveredEvent. Delivering a delivered order changes nothing.
func (o *Order) MarkDelivered(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	if newStatus == o.status {
		return nil
	}

	previous := o.status
	o.status = newStatus
	o.updatedAt = at
	o.raise(DeliveredEvent{event: newEvent(o.id, at), UserID: o.userID, PreviousStatus: previous})
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(e kernel.DomainEvent) {
	o.domainEvents = append(o.domainEvents, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setItems stores the items and derives the total from them.
func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	total := kernel.ZeroMoney()
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
		total = total.Add(item.Subtotal())
	}
	if total.Amount().GreaterThan(maxTotal) {
		return errs.NewValueIsOutOfRangeError("total", total, 0, maxTotal)
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	o.total = total
	return nil
}
