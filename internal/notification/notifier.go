package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/message"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/realtime"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// Notifier fans order events out to the open subscriptions of each store.
type Notifier struct {
	tr     *i18n.Translator
	money  *message.MoneyFormatter
	opts   Options
	sinks  []Sink
	logger logger.ZapLogger
	now    func() time.Time

	mu   sync.RWMutex
	subs map[string]*Subscription
}

func NewNotifier(tr *i18n.Translator, opts Options, log logger.ZapLogger, sinks ...Sink) *Notifier {
	if opts.AlertBuffer <= 0 {
		opts.AlertBuffer = 32
	}
	return &Notifier{
		tr:     tr,
		money:  message.NewMoneyFormatter(opts.Locale, opts.CurrencySymbol),
		opts:   opts,
		sinks:  sinks,
		logger: log,
		now:    time.Now,
		subs:   map[string]*Subscription{},
	}
}

// Subscribe opens a subscription for storeID starting now.
func (n *Notifier) Subscribe(storeID string) *Subscription {
	s := newSubscription(uuid.New().String(), storeID, n.now(), n.opts.AlertBuffer)

	n.mu.Lock()
	n.subs[s.ID] = s
	n.mu.Unlock()
	activeSubscriptions.Inc()

	n.logger.Info("notification subscription opened", zap.String("subscription_id", s.ID), zap.String("store_id", storeID))
	return s
}

func (n *Notifier) Unsubscribe(id string) {
	n.mu.Lock()
	s, ok := n.subs[id]
	delete(n.subs, id)
	n.mu.Unlock()
	if !ok {
		return
	}
	s.close()
	activeSubscriptions.Dec()
}

// Get returns the subscription only when it belongs to storeID.
func (n *Notifier) Get(storeID, id string) (*Subscription, error) {
	n.mu.RLock()
	s, ok := n.subs[id]
	n.mu.RUnlock()
	if !ok || s.StoreID != storeID {
		return nil, ErrSubscriptionNotFound
	}
	return s, nil
}

// Dispatch raises at most one alert per subscription and returns how many were raised.
func (n *Notifier) Dispatch(ctx context.Context, e *realtime.OrderEvent) int {
	n.mu.RLock()
	subs := make([]*Subscription, 0, len(n.subs))
	for _, s := range n.subs {
		subs = append(subs, s)
	}
	n.mu.RUnlock()

	raised := 0
	for _, s := range subs {
		ok, reason := s.accept(e)
		if !ok {
			if reason != reasonOtherStore {
				eventsIgnored.WithLabelValues(reason).Inc()
			}
			continue
		}

		a := n.alertFor(e)
		if !s.push(a) {
			n.logger.Warn("alert buffer full, alert dropped",
				zap.String("subscription_id", s.ID),
				zap.String("order_id", a.OrderID),
			)
		}
		alertsTotal.WithLabelValues(s.StoreID).Inc()
		raised++

		for _, sink := range n.sinks {
			if err := sink.Notify(ctx, a); err != nil {
				n.logger.Error("notification sink failed", zap.String("order_id", a.OrderID), zap.Error(err))
			}
		}
	}
	return raised
}

func (n *Notifier) alertFor(e *realtime.OrderEvent) Alert {
	lang := n.opts.Locale
	return Alert{
		OrderID:      e.Order.ID,
		StoreID:      e.StoreID,
		CustomerName: e.Order.CustomerName,
		Total:        e.Order.Total,
		Title:        n.tr.T(lang, i18n.NewOrderAlert, nil),
		Body: n.tr.T(lang, i18n.NewOrderAlertBody, map[string]interface{}{
			"Customer": e.Order.CustomerName,
			"Total":    n.money.Format(e.Order.Total),
		}),
		Chime:     true,
		System:    n.opts.SystemNotificationsAllowed,
		CreatedAt: e.Order.CreatedAt,
	}
}

// Close ends every open subscription.
func (n *Notifier) Close() {
	n.mu.Lock()
	subs := n.subs
	n.subs = map[string]*Subscription{}
	n.mu.Unlock()
	for _, s := range subs {
		s.close()
		activeSubscriptions.Dec()
	}
}
