// Package metrics содержит счётчики prometheus, публикуемые на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignalsIngested считает принятые вебхуком сигналы.
	SignalsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signals_ingested_total",
		Help: "Number of trading signals accepted by the webhook endpoint.",
	})

	// SubscriptionsCreated считает оформленные подписки по тарифам.
	SubscriptionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscriptions_created_total",
		Help: "Number of subscriptions created, labeled by plan type.",
	}, []string{"plan_type"})
)
