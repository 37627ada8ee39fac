package queue

import (
	"context"
	"encoding/json"
	"time"

	"venue-booking/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeName = "reservations"

	RoutingKeyCreated       = "reservation.created"
	RoutingKeyStatusChanged = "reservation.status_changed"
)

// Publisher emits reservation events to RabbitMQ after the owning
// transaction has committed. Publishing is best-effort: a broker outage must
// never fail a booking that is already durable.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to the broker and declares the reservations topic
// exchange. An empty URL disables publishing; callers treat a nil publisher
// as "events off".
func NewPublisher(amqpURL string) (*Publisher, error) {
	if amqpURL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// Publish marshals the payload and sends it under the routing key. A nil
// publisher is a no-op so call sites stay unconditional.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) {
	if p == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal queue payload for "+routingKey, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		logger.Error("Failed to publish "+routingKey, err)
	}
}

// Close tears down the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
