package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRabbitMQ(t *testing.T) *amqp.Connection {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "rabbitmq:3.13-alpine",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672")
	require.NoError(t, err)

	conn, err := Dial("amqp://" + host + ":" + port.Port() + "/")
	require.NoError(t, err)

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cleanupCancel()

		_ = conn.Close()
		_ = container.Terminate(cleanupCtx)
	})

	return conn
}

func TestPublisher_RoutesByEventName(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	conn := startRabbitMQ(t)
	publisher, err := NewPublisher(conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "order.placed.*", EventsExchange, false, nil))

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	o := newOrder(t)
	require.NoError(t, o.Cancel(time.Now().UTC()))
	require.NoError(t, publisher.Publish(context.Background(), o.DomainEvents()...))

	select {
	case d := <-deliveries:
		assert.Equal(t, order.PlacedEventName, d.RoutingKey)
		assert.Equal(t, "application/json", d.ContentType)

		var env Envelope
		require.NoError(t, json.Unmarshal(d.Body, &env))
		assert.Equal(t, o.ID().String(), env.AggregateID)
	case <-time.After(10 * time.Second):
		t.Fatal("placed event was not delivered")
	}

	select {
	case d := <-deliveries:
		t.Fatalf("unexpected delivery with routing key %s", d.RoutingKey)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestLogPublisher(t *testing.T) {
	o := newOrder(t)

	assert.NoError(t, LogPublisher{}.Publish(context.Background(), o.DomainEvents()...))
	assert.NoError(t, LogPublisher{Logger: slog.Default()}.Publish(context.Background(), o.DomainEvents()...))
}
