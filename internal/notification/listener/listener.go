package listener

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/realtime"
	"go.uber.org/zap"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, e *realtime.OrderEvent) int
}

// OrderListener pumps order events from the realtime channel into the notifier.
type OrderListener struct {
	sub     realtime.Subscriber
	notify  Dispatcher
	logger  logger.ZapLogger
	backoff time.Duration
}

func NewOrderListener(sub realtime.Subscriber, notify Dispatcher, logger logger.ZapLogger) *OrderListener {
	return &OrderListener{
		sub:     sub,
		notify:  notify,
		logger:  logger,
		backoff: 1 * time.Second,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting Order Event Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Order Event Listener")
			return
		default:
			e, err := l.sub.Next(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil || errors.Is(err, realtime.ErrClosed) {
					return
				}
				l.logger.Error("Failed to read order event", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			l.processEvent(ctx, e)
		}
	}
}

func (l *OrderListener) processEvent(ctx context.Context, e *realtime.OrderEvent) {
	if e.EventType != realtime.OrderCreated {
		return
	}
	raised := l.notify.Dispatch(ctx, e)
	l.logger.Debug("Processed OrderCreated event",
		zap.String("order_id", e.Order.ID),
		zap.String("store_id", e.StoreID),
		zap.Int("alerts", raised),
	)
}
