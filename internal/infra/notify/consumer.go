package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tutorly/booking-engine/internal/infra/events"
)

// routingKeyTexts is the subset of booking.* routing keys the notifier
// DMs the host about, and the message template for each.
var routingKeyTexts = map[string]string{
	events.RoutingKeyConfirmed:       "Your booking #%d is confirmed.",
	events.RoutingKeyCanceled:        "Your booking #%d has been canceled.",
	events.RoutingKeyRefundRequested: "A refund was requested for booking #%d.",
}

// Logger is the narrow logging dependency Worker needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker consumes the booking events this package cares about off a
// dedicated queue bound to the domain-events exchange and DMs the
// booking's host. Chat-ID resolution from a HostID belongs to the
// profile service and is out of this repository's scope; Worker
// notifies the host's ID itself, which only behaves correctly once a
// real chat-ID mapping is wired in downstream.
type Worker struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	notifier Notifier
	logger   Logger
}

// NewWorker dials url, declares exchange and a queue bound to every
// routing key this package notifies on.
func NewWorker(url, exchange, queue string, notifier Notifier, logger Logger) (*Worker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare exchange %s: %w", exchange, err)
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: declare queue %s: %w", queue, err)
	}

	for routingKey := range routingKeyTexts {
		if err := ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("notify: bind %s: %w", routingKey, err)
		}
	}

	return &Worker{conn: conn, ch: ch, queue: q.Name, notifier: notifier, logger: logger}, nil
}

// Run consumes deliveries until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.ch.ConsumeWithContext(ctx, w.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("notify: consume %s: %w", w.queue, err)
	}

	for delivery := range deliveries {
		w.handle(delivery)
	}
	return ctx.Err()
}

func (w *Worker) handle(delivery amqp.Delivery) {
	template, known := routingKeyTexts[delivery.RoutingKey]
	if !known {
		_ = delivery.Ack(false)
		return
	}

	var event events.BookingEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		w.logger.Warn("notify: malformed %s payload: %v", delivery.RoutingKey, err)
		_ = delivery.Ack(false)
		return
	}

	if err := w.notifier.Notify(event.HostID, fmt.Sprintf(template, event.BookingID)); err != nil {
		w.logger.Error("notify: failed to DM host %d for booking %d: %v", event.HostID, event.BookingID, err)
	}

	_ = delivery.Ack(false)
}

// Close tears down the channel and connection.
func (w *Worker) Close() error {
	if w.ch != nil {
		_ = w.ch.Close()
	}
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}
