package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// DefaultQueue is the durable queue change events are forwarded to.
const DefaultQueue = "juris.changes"

// amqpChannel is the subset of *amqp.Channel used by the forwarder.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPForwarder republishes bus events to a RabbitMQ queue so processes
// outside this one can refresh their views. Publish failures are logged and
// the event is dropped.
type AMQPForwarder struct {
	Queue string

	conn *amqp.Connection
	ch   amqpChannel
}

// DialAMQP connects to the broker and declares queue (durable).
func DialAMQP(url, queue string) (*AMQPForwarder, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	return &AMQPForwarder{Queue: queue, conn: conn, ch: ch}, nil
}

// Run forwards events from bus until ctx is done.
func (f *AMQPForwarder) Run(ctx context.Context, bus *Bus) {
	events, cancel := bus.Subscribe(64)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := f.forward(ctx, ev); err != nil {
				log.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("amqp forward failed")
			}
		}
	}
}

func (f *AMQPForwarder) forward(ctx context.Context, ev Event) error {
	msg, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	// Default exchange; routing key is the queue name.
	return f.ch.PublishWithContext(ctx, "", f.Queue, false, false, msg)
}

// Close closes the channel and the connection.
func (f *AMQPForwarder) Close() error {
	if f.ch != nil {
		_ = f.ch.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

func encodeEvent(ev Event) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(ev.Kind),
		Timestamp:    ev.At,
		Body:         body,
	}, nil
}
