package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring sync health
var (
	OrdersPushedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pickhero_orders_pushed_total",
			Help: "Total number of orders submitted to the warehouse",
		},
	)

	ProcessingTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pickhero_processing_triggered_total",
			Help: "Total number of processing triggers sent to the warehouse",
		},
	)

	SyncFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pickhero_sync_failures_total",
			Help: "Total number of failed order sync attempts",
		},
	)

	OrdersUnlinkedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pickhero_orders_unlinked_total",
			Help: "Total number of orders unlinked for resubmission",
		},
	)

	WebhooksReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickhero_webhooks_received_total",
			Help: "Total number of inbound webhook deliveries by result",
		},
		[]string{"result"},
	)

	ProductsExportedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickhero_products_exported_total",
			Help: "Total number of product export operations by outcome",
		},
		[]string{"outcome"},
	)
)

// Webhook result label values.
const (
	WebhookResultOK      = "ok"
	WebhookResultIgnored = "ignored"
	WebhookResultError   = "error"
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(OrdersPushedTotal)
	prometheus.MustRegister(ProcessingTriggeredTotal)
	prometheus.MustRegister(SyncFailuresTotal)
	prometheus.MustRegister(OrdersUnlinkedTotal)
	prometheus.MustRegister(WebhooksReceivedTotal)
	prometheus.MustRegister(ProductsExportedTotal)
}
