package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	alertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notifier_alerts_total",
			Help: "New-order alerts raised per store",
		},
		[]string{"store_id"},
	)

	eventsIgnored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_notifier_events_ignored_total",
			Help: "Order events that did not raise an alert",
		},
		[]string{"reason"},
	)

	activeSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_notifier_subscriptions",
			Help: "Open new-order subscriptions",
		},
	)
)
