package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *model.Order {
	return &model.Order{
		BaseModel:    model.BaseModel{ID: "o1", CreatedAt: time.Now()},
		StoreID:      "s1",
		CustomerName: "Ana",
		Total:        decimal.RequireFromString("58.90"),
		Status:       model.OrderStatusPending,
	}
}

type fakeWriter struct {
	key   string
	value []byte
}

func (f *fakeWriter) Publish(_ context.Context, key string, value []byte) error {
	f.key, f.value = key, value
	return nil
}

func (f *fakeWriter) Close() error { return nil }

type fakeReader struct{ msgs []kafka.Message }

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.msgs) == 0 {
		return kafka.Message{}, errors.New("empty")
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) Close() error { return nil }

func TestKafkaRoundTrip(t *testing.T) {
	w := &fakeWriter{}
	pub := &KafkaPublisher{producer: w}
	require.NoError(t, pub.Publish(context.Background(), NewOrderEvent(OrderCreated, sampleOrder(), "")))
	assert.Equal(t, "s1", w.key)

	sub := &KafkaSubscriber{consumer: &fakeReader{msgs: []kafka.Message{{Value: w.value}}}}
	e, err := sub.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OrderCreated, e.EventType)
	assert.Equal(t, "o1", e.Order.ID)
	assert.True(t, e.Order.Total.Equal(decimal.RequireFromString("58.9")))
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func TestRabbitPublishAndConsume(t *testing.T) {
	ch := &fakeChannel{}
	pub := &RabbitPublisher{ch: ch, exchange: "storefront.orders"}
	o := sampleOrder()
	o.Status = model.OrderStatusConfirmed
	require.NoError(t, pub.Publish(context.Background(), NewOrderEvent(OrderStatusChanged, o, model.OrderStatusPending)))

	assert.Equal(t, "storefront.orders", ch.exchange)
	assert.Equal(t, "order.OrderStatusChanged.s1", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Body: ch.msg.Body}
	close(deliveries)
	sub := &RabbitSubscriber{deliveries: deliveries}

	e, err := sub.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, e.PreviousStatus)

	_, err = sub.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRabbitNextHonoursContext(t *testing.T) {
	sub := &RabbitSubscriber{deliveries: make(chan amqp.Delivery)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreBinding(t *testing.T) {
	assert.Equal(t, "order.*.s1", StoreBinding("s1"))
	assert.Equal(t, "order.*.*", StoreBinding(""))
}
