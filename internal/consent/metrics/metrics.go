package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Read outcomes for stored consent lookups.
const (
	ReadFound   = "found"
	ReadAbsent  = "absent"
	ReadCorrupt = "corrupt"
	ReadError   = "error"
)

// Metrics holds Prometheus collectors for the consent gate.
type Metrics struct {
	DecisionsRecorded  *prometheus.CounterVec
	ScriptsInjected    *prometheus.CounterVec
	ScriptLoadFailures *prometheus.CounterVec
	StoredConsentReads *prometheus.CounterVec
	ActivePages        prometheus.Gauge
	PagesSwept         prometheus.Counter

	// Performance metrics
	StoreOperationLatency *prometheus.HistogramVec
}

// New registers collectors with the default Prometheus registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cookie_consent_decisions_total",
			Help: "Total number of consent decisions, labeled by category and outcome",
		}, []string{"category", "outcome"}),
		ScriptsInjected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cookie_consent_scripts_injected_total",
			Help: "Total number of provider scripts injected into pages, labeled by provider",
		}, []string{"provider"}),
		ScriptLoadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cookie_consent_script_load_failures_total",
			Help: "Total number of provider script loads that failed, labeled by provider",
		}, []string{"provider"}),
		StoredConsentReads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cookie_consent_stored_reads_total",
			Help: "Total number of stored consent lookups, labeled by result",
		}, []string{"result"}),
		ActivePages: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cookie_consent_active_pages",
			Help: "Current number of mounted page sessions",
		}),
		PagesSwept: factory.NewCounter(prometheus.CounterOpts{
			Name: "cookie_consent_pages_swept_total",
			Help: "Total number of idle page sessions removed by the sweeper",
		}),

		StoreOperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cookie_consent_store_operation_latency_seconds",
			Help:    "Latency of consent store operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementDecision(category string, granted bool) {
	outcome := "declined"
	if granted {
		outcome = "granted"
	}
	m.DecisionsRecorded.WithLabelValues(category, outcome).Inc()
}

func (m *Metrics) IncrementScriptsInjected(provider string) {
	m.ScriptsInjected.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementScriptLoadFailures(provider string) {
	m.ScriptLoadFailures.WithLabelValues(provider).Inc()
}

func (m *Metrics) IncrementStoredConsentRead(result string) {
	m.StoredConsentReads.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementActivePages() {
	m.ActivePages.Inc()
}

func (m *Metrics) DecrementActivePages(count float64) {
	m.ActivePages.Sub(count)
}

func (m *Metrics) AddPagesSwept(count float64) {
	m.PagesSwept.Add(count)
}

// ObserveStoreOperationLatency records the latency of a store operation.
func (m *Metrics) ObserveStoreOperationLatency(operation string, durationSeconds float64) {
	m.StoreOperationLatency.WithLabelValues(operation).Observe(durationSeconds)
}
