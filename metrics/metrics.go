package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_orders_accepted_total",
			Help: "Orders admitted to the matching engine",
		},
	)

	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_orders_rejected_total",
			Help: "Orders rejected by the intake pipeline, by reason code",
		},
		[]string{"reason"},
	)

	EngineQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_engine_queue_depth",
			Help: "Accepted orders waiting on the engine handoff queue",
		},
	)

	EngineQueueDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_engine_queue_dropped_total",
			Help: "Accepted orders dropped from the handoff queue because it was full",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersAccepted, OrdersRejected, EngineQueueDepth, EngineQueueDropped)
}
