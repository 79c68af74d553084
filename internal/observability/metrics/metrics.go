package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parish_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"result"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parish_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	BookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parish_bookings_total",
			Help: "Total number of slot booking attempts.",
		},
		[]string{"kind", "result"},
	)

	PaymentStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parish_payment_status_total",
			Help: "Terminal payment status transitions applied.",
		},
		[]string{"status", "source"},
	)

	WebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parish_webhooks_total",
			Help: "Inbound gateway webhook deliveries.",
		},
		[]string{"result"},
	)
)

func MustRegister(serviceName string) {
	HTTPRequestsTotal = HTTPRequestsTotal.MustCurryWith(prometheus.Labels{"service": serviceName})
	HTTPRequestDurationSeconds = HTTPRequestDurationSeconds.MustCurryWith(prometheus.Labels{"service": serviceName}).(*prometheus.HistogramVec)

	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		RegistrationsTotal,
		LoginsTotal,
		BookingsTotal,
		PaymentStatusTotal,
		WebhooksTotal,
	)
}
