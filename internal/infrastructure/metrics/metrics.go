// Package metrics contains Prometheus metrics of the alerts bot
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pkgerrors "github.com/Conte777/MinaAlerts/pkg/errors"
)

// Metrics holds all Prometheus metrics for the alerts bot
type Metrics struct {
	CommandsTotal   *prometheus.CounterVec
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	EventsPublished *prometheus.CounterVec
}

var (
	// DefaultMetrics is registered on the default Prometheus registry
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates and registers all metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mina_alerts_commands_total",
				Help: "Total number of processed bot commands by outcome",
			},
			[]string{"command", "outcome"},
		),
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mina_alerts_store_operations_total",
				Help: "Total number of subscription store operations by result",
			},
			[]string{"operation", "result"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mina_alerts_store_operation_duration_seconds",
				Help:    "Duration of subscription store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mina_alerts_events_published_total",
				Help: "Total number of subscription change events by result",
			},
			[]string{"type", "result"},
		),
	}
}

// ObserveCommand counts a processed command
func (m *Metrics) ObserveCommand(command, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObserveStoreOperation records a store call. Failed calls are labelled
// with their error type.
func (m *Metrics) ObserveStoreOperation(operation string, duration time.Duration, err error) {
	m.StoreDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.StoreOperations.WithLabelValues(operation, result(err)).Inc()
}

// ObserveEventPublish counts a published event
func (m *Metrics) ObserveEventPublish(eventType string, err error) {
	m.EventsPublished.WithLabelValues(eventType, result(err)).Inc()
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return pkgerrors.TypeOf(err).String()
}
