package realtime

import (
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/google/uuid"
)

const (
	DriverKafka    = "kafka"
	DriverRabbitMQ = "rabbitmq"
)

type DriverConfig struct {
	Driver         string
	Kafka          broker.Config
	RabbitURL      string
	RabbitExchange string
	// StoreID narrows RabbitMQ subscriptions to one store; empty means every store.
	StoreID string
	// Instance makes the Kafka consumer group unique to this replica so every
	// replica sees every partition.
	Instance string
}

// SubscriberGroupID is the Kafka consumer group of one replica's subscriber.
func SubscriberGroupID(base, instance string) string {
	if instance == "" {
		instance = uuid.NewString()
	}
	if base == "" {
		return instance
	}
	return base + "-" + instance
}

func NewPublisher(cfg *DriverConfig) (Publisher, error) {
	switch cfg.Driver {
	case DriverKafka:
		return NewKafkaPublisher(broker.NewProducer(&cfg.Kafka)), nil
	case DriverRabbitMQ:
		r, err := NewRabbitMQ(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			return nil, err
		}
		return NewRabbitPublisher(r), nil
	}
	return nil, fmt.Errorf("unknown realtime driver %q", cfg.Driver)
}

func NewSubscriber(cfg *DriverConfig) (Subscriber, error) {
	switch cfg.Driver {
	case DriverKafka:
		kc := cfg.Kafka
		kc.GroupID = SubscriberGroupID(cfg.Kafka.GroupID, cfg.Instance)
		return NewKafkaSubscriber(broker.NewConsumer(&kc)), nil
	case DriverRabbitMQ:
		r, err := NewRabbitMQ(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			return nil, err
		}
		sub, err := NewRabbitSubscriber(r, cfg.StoreID)
		if err != nil {
			r.Close()
			return nil, err
		}
		return sub, nil
	}
	return nil, fmt.Errorf("unknown realtime driver %q", cfg.Driver)
}
