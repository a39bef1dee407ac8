package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TicketsCreated  prometheus.Counter
	TicketsVerified prometheus.Counter
	TicketsDeleted  prometheus.Counter
	AuthDenied      prometheus.Counter
	RequestDuration prometheus.Histogram
	ErrorsCount     *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg. Pass
// prometheus.DefaultRegisterer in production; tests use a private
// registry so repeated construction does not collide.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TicketsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "The total number of tickets inserted",
		}),
		TicketsVerified: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_verified_total",
			Help:      "The total number of ticket verification updates",
		}),
		TicketsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_deleted_total",
			Help:      "The total number of tickets deleted",
		}),
		AuthDenied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_denied_total",
			Help:      "The total number of denied authentication attempts",
		}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time taken to serve API requests",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
