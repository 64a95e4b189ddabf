// Package messaging publishes domain events to RabbitMQ.
//
// Every event goes to the durable topic exchange EventsExchange with the event
// name as routing key (for example "order.placed.v1"). The body is a JSON
// Envelope whose Payload depends on the event.
package messaging

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

const EventsExchange = "storefront.events"

// Envelope is the wire format of every published event.
type Envelope struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

type OrderPlaced struct {
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

type OrderCanceled struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
}

type OrderDelivered struct {
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	PreviousStatus string `json:"previous_status"`
}

func payloadOf(e kernel.DomainEvent) any {
	switch ev := e.(type) {
	case order.PlacedEvent:
		return OrderPlaced{
			OrderID:   ev.AggregateID().String(),
			UserID:    ev.UserID.String(),
			Total:     ev.Total.String(),
			ItemCount: ev.Items,
		}
	case order.CanceledEvent:
		return OrderCanceled{
			OrderID: ev.AggregateID().String(),
			UserID:  ev.UserID.String(),
		}
	case order.DeliveredEvent:
		return OrderDelivered{
			OrderID:        ev.AggregateID().String(),
			UserID:         ev.UserID.String(),
			PreviousStatus: ev.PreviousStatus.String(),
		}
	default:
		return struct{}{}
	}
}

func encode(e kernel.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(payloadOf(e))
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{
		EventID:     e.EventID().String(),
		EventType:   e.Name(),
		AggregateID: e.AggregateID().String(),
		OccurredAt:  e.OccurredAt().UTC(),
		Payload:     payload,
	})
}
