package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_orders_cancelled_total",
		Help: "Total number of orders cancelled by their owner.",
	})

	OrderEditsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_order_edits_total",
		Help: "Total number of admin order edits applied.",
	})

	CapacityRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_capacity_rejections_total",
		Help: "Total number of bookings rejected for lack of store capacity.",
	})

	IdempotentReplaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_idempotent_replays_total",
		Help: "Total number of create requests answered from an earlier order.",
	})

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_notification_failures_total",
		Help: "Total number of emails that could not be sent.",
	},
		[]string{"kind"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	PaymentEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_payment_events_total",
		Help: "Payment events consumed, by type and outcome.",
	},
		[]string{"type", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route", "status"},
	)
)

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
