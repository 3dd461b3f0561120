package realtime

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

type kafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaPublisher keys messages by store id so one store's events stay ordered.
type KafkaPublisher struct {
	producer kafkaWriter
}

func NewKafkaPublisher(producer *broker.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e *OrderEvent) error {
	data, err := Marshal(e)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, e.StoreID, data)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// KafkaSubscriber reads every store's events; filtering is left to the caller.
type KafkaSubscriber struct {
	consumer kafkaReader
}

func NewKafkaSubscriber(consumer *broker.KafkaConsumer) *KafkaSubscriber {
	return &KafkaSubscriber{consumer: consumer}
}

func (s *KafkaSubscriber) Next(ctx context.Context) (*OrderEvent, error) {
	msg, err := s.consumer.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}
	return Unmarshal(msg.Value)
}

func (s *KafkaSubscriber) Close() error {
	return s.consumer.Close()
}
