package kernel

import "time"

// DomainEvent is a fact raised by an aggregate and published after its
// transaction commits.
type DomainEvent interface {
	EventID() UUID
	// Name is the routing key, e.g. "order.placed.v1".
	Name() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is implemented by aggregates that raise domain events.
type EventRecorder interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
