// Package metrics tracks daemon counters and exposes them to Prometheus.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "osint_pivot"

// Metrics tracks system metrics
type Metrics struct {
	mu sync.RWMutex

	jobsStarted int64
	jobsStopped int64
	pagesOpened int64
	tabFailures int64
	dispatched  int64
	rateLimited int64
	activeJobs  int64

	registry    *prometheus.Registry
	startedVec  *prometheus.CounterVec
	stoppedVec  *prometheus.CounterVec
	pagesVec    *prometheus.CounterVec
	failuresCtr prometheus.Counter
	dispatchVec *prometheus.CounterVec
	limitedCtr  prometheus.Counter
	activeGauge prometheus.Gauge
}

// NewMetrics creates a new metrics instance backed by a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		startedVec: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otx_jobs_started_total",
			Help:      "OTX jobs started or resumed",
		}, []string{"kind"}),
		stoppedVec: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otx_jobs_paused_total",
			Help:      "OTX jobs paused, by reason",
		}, []string{"reason"}),
		pagesVec: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otx_pages_opened_total",
			Help:      "OTX result pages opened as tabs",
		}, []string{"kind"}),
		failuresCtr: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tab_open_failures_total",
			Help:      "Tab opens that failed",
		}),
		dispatchVec: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatched_tabs_total",
			Help:      "Lookup tabs opened by the dispatcher, by route",
		}, []string{"route"}),
		limitedCtr: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_rate_limited_total",
			Help:      "Dispatch requests rejected by the per-host throttle",
		}),
		activeGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "otx_jobs_active",
			Help:      "OTX jobs currently running",
		}),
	}
}

// IncrementJobsStarted counts a start or resume of a job of the given kind
func (m *Metrics) IncrementJobsStarted(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobsStarted++
	m.startedVec.WithLabelValues(kind).Inc()
}

// IncrementJobsStopped counts a transition to paused. reason is one of
// budget, stop or end_of_data.
func (m *Metrics) IncrementJobsStopped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobsStopped++
	m.stoppedVec.WithLabelValues(reason).Inc()
}

// IncrementPagesOpened counts one OTX page tab
func (m *Metrics) IncrementPagesOpened(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesOpened++
	m.pagesVec.WithLabelValues(kind).Inc()
}

// IncrementTabFailures counts a failed tab open
func (m *Metrics) IncrementTabFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tabFailures++
	m.failuresCtr.Inc()
}

// IncrementDispatched counts a tab opened by the dispatcher
func (m *Metrics) IncrementDispatched(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatched++
	m.dispatchVec.WithLabelValues(route).Inc()
}

// IncrementRateLimited counts a throttled dispatch
func (m *Metrics) IncrementRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited++
	m.limitedCtr.Inc()
}

// SetActiveJobs records how many jobs are running
func (m *Metrics) SetActiveJobs(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeJobs = int64(n)
	m.activeGauge.Set(float64(n))
}

// GetSnapshot returns a snapshot of all metrics
func (m *Metrics) GetSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]int64{
		"jobs_started": m.jobsStarted,
		"jobs_stopped": m.jobsStopped,
		"pages_opened": m.pagesOpened,
		"tab_failures": m.tabFailures,
		"dispatched":   m.dispatched,
		"rate_limited": m.rateLimited,
		"active_jobs":  m.activeJobs,
	}
}

// Registry exposes the private Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
