package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/store/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/store/internal/service/models/orderevent"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// DefaultQueue receives order events when rabbitmq.queue is not configured.
const DefaultQueue = "store.orders.events"

// publisher is the part of *amqp.Channel the repository needs.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type EventRabbitMQRepository struct {
	channel publisher
	queue   string
	timeout time.Duration
}

// NewEventRepository publishes to queue through channel.
func NewEventRepository(channel publisher, queue string) *EventRabbitMQRepository {
	return &EventRabbitMQRepository{
		channel: channel,
		queue:   queue,
		timeout: 30 * time.Second,
	}
}

// MustNewEventRabbitMQRepository declares the durable events queue and returns
// a repository publishing to it.
func MustNewEventRabbitMQRepository(client *rabbitmq.Client, queue string) *EventRabbitMQRepository {
	if queue == "" {
		queue = DefaultQueue
	}

	q, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queue,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return NewEventRepository(client.Channel(), q.Name)
}

// Publish sends every event as a persistent JSON message. The publish runs on
// its own deadline so a finished request does not cancel it.
func (r *EventRabbitMQRepository) Publish(_ context.Context, evs []orderevent.Event) error {
	if len(evs) == 0 {
		return nil
	}

	pubCtx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	g, ctx := errgroup.WithContext(pubCtx)
	g.SetLimit(3)

	for _, ev := range evs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			body, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}

			err = r.channel.Publish(
				"",
				r.queue,
				false,
				false,
				amqp.Publishing{
					ContentType:  "application/json",
					DeliveryMode: amqp.Persistent,
					MessageId:    uuid.NewString(),
					Type:         string(ev.Kind),
					Timestamp:    ev.OccurredAt,
					Body:         body,
				},
			)
			if err != nil {
				return fmt.Errorf("failed to publish %s for order %d: %w", ev.Kind, ev.OrderID, err)
			}

			return nil
		})
	}

	return g.Wait()
}
