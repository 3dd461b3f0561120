package realtime

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RoutingKey is "order.<event>.<store>" so consumers can bind per store.
func RoutingKey(t EventType, storeID string) string {
	return fmt.Sprintf("order.%s.%s", t, storeID)
}

// StoreBinding matches every event of one store; "*" matches all stores.
func StoreBinding(storeID string) string {
	if storeID == "" {
		storeID = "*"
	}
	return "order.*." + storeID
}

type RabbitMQ struct {
	Conn     *amqp.Connection
	Channel  *amqp.Channel
	Exchange string
}

func NewRabbitMQ(url, exchange string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &RabbitMQ{Conn: conn, Channel: ch, Exchange: exchange}, nil
}

func (r *RabbitMQ) Close() error {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.Conn != nil {
		return r.Conn.Close()
	}
	return nil
}

type RabbitPublisher struct {
	ch       amqpPublisher
	exchange string
	closer   func() error
}

func NewRabbitPublisher(r *RabbitMQ) *RabbitPublisher {
	return &RabbitPublisher{ch: r.Channel, exchange: r.Exchange, closer: r.Close}
}

func (p *RabbitPublisher) Publish(ctx context.Context, e *OrderEvent) error {
	data, err := Marshal(e)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		p.exchange,
		RoutingKey(e.EventType, e.StoreID),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			MessageId:    e.EventID,
			Type:         string(e.EventType),
			Body:         data,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}

// RabbitSubscriber consumes a private, auto-deleted queue bound to one store.
type RabbitSubscriber struct {
	deliveries <-chan amqp.Delivery
	closer     func() error
}

func NewRabbitSubscriber(r *RabbitMQ, storeID string) (*RabbitSubscriber, error) {
	q, err := r.Channel.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}
	if err := r.Channel.QueueBind(q.Name, StoreBinding(storeID), r.Exchange, false, nil); err != nil {
		return nil, err
	}
	deliveries, err := r.Channel.Consume(
		q.Name,
		"storefront-notifier", // consumer tag
		true,                  // auto-ack
		true,                  // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &RabbitSubscriber{deliveries: deliveries, closer: r.Close}, nil
}

func (s *RabbitSubscriber) Next(ctx context.Context) (*OrderEvent, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case d, ok := <-s.deliveries:
		if !ok {
			return nil, ErrClosed
		}
		return Unmarshal(d.Body)
	}
}

func (s *RabbitSubscriber) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
