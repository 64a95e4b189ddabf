package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
