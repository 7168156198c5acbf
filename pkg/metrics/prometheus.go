package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsParsed        prometheus.Counter
	StatusChanges        prometheus.Counter
	BoardFetchFailures   prometheus.Counter
	NotificationsSent    *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	RefreshDuration      prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_parsed_total",
			Help:      "The total number of flight rows accepted from the arrivals board",
		}),
		StatusChanges: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_changes_total",
			Help:      "The total number of flight status transitions detected",
		}),
		BoardFetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "board_fetch_failures_total",
			Help:      "The total number of failed arrivals-board fetches",
		}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notifications delivered, by channel",
		}, []string{"channel"}),
		NotificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "The total number of failed notification attempts, by channel",
		}, []string{"channel"}),
		RefreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Time taken to run the board refresh pipeline",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
