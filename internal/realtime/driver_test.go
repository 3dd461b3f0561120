package realtime

import (
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/broker"
	"github.com/stretchr/testify/assert"
)

func TestUnknownDriver(t *testing.T) {
	_, err := NewPublisher(&DriverConfig{Driver: "nats"})
	assert.EqualError(t, err, `unknown realtime driver "nats"`)

	_, err = NewSubscriber(&DriverConfig{Driver: ""})
	assert.Error(t, err)
}

func TestKafkaDriverBuildsLazily(t *testing.T) {
	pub, err := NewPublisher(&DriverConfig{Driver: DriverKafka})
	assert.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, pub)
}

func TestSubscriberGroupIDPerInstance(t *testing.T) {
	assert.Equal(t, "storefront-notifier-pod-a", SubscriberGroupID("storefront-notifier", "pod-a"))
	assert.Equal(t, "pod-b", SubscriberGroupID("", "pod-b"))

	a := SubscriberGroupID("storefront-notifier", "")
	b := SubscriberGroupID("storefront-notifier", "")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "storefront-notifier-")
}

func TestKafkaSubscriberBuildsLazily(t *testing.T) {
	sub, err := NewSubscriber(&DriverConfig{
		Driver:   DriverKafka,
		Kafka:    broker.Config{Brokers: []string{"localhost:9092"}, Topic: "orders", GroupID: "notifier"},
		Instance: "pod-a",
	})
	assert.NoError(t, err)
	assert.IsType(t, &KafkaSubscriber{}, sub)
	_ = sub.Close()
}
