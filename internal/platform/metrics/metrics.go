package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the onboarding service.
type Metrics struct {
	FormsSent           prometheus.Counter
	SubmissionsAccepted prometheus.Counter
	CompletionsStamped  prometheus.Counter
	NotifyFailures      prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on a caller-supplied registry; tests pass a fresh one
// to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FormsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_forms_sent_total",
			Help: "Total number of onboarding forms distributed",
		}),
		SubmissionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_submissions_accepted_total",
			Help: "Total number of recipient submissions accepted",
		}),
		CompletionsStamped: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_completions_stamped_total",
			Help: "Total number of recipients stamped as fully complete",
		}),
		NotifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboard_notify_failures_total",
			Help: "Total number of notification deliveries that failed",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}
