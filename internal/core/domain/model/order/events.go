package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

const (
	PlacedEventName    = "order.placed.v1"
	CanceledEventName  = "order.canceled.v1"
	DeliveredEventName = "order.delivered.v1"
)

type event struct {
	id         kernel.UUID
	orderID    kernel.UUID
	occurredAt time.Time
}

func newEvent(orderID kernel.UUID, at time.Time) event {
	return event{id: kernel.NewUUID(), orderID: orderID, occurredAt: at}
}

func (e event) EventID() kernel.UUID     { return e.id }
func (e event) AggregateID() kernel.UUID { return e.orderID }
func (e event) OccurredAt() time.Time    { return e.occurredAt }

// PlacedEvent is raised once, when a new order is created.
type PlacedEvent struct {
	event
	UserID kernel.UUID
	Total  kernel.Money
	Items  int
}

func (PlacedEvent) Name() string { return PlacedEventName }

// CanceledEvent is raised when an open order is canceled.
type CanceledEvent struct {
	event
	UserID kernel.UUID
}

func (CanceledEvent) Name() string { return CanceledEventName }

// DeliveredEvent is raised when an open or canceled order is delivered.
type DeliveredEvent struct {
	event
	UserID         kernel.UUID
	PreviousStatus Status
}

func (DeliveredEvent) Name() string { return DeliveredEventName }
