// Package metrics provides Prometheus metrics for the blaugrana dashboard.
package metrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset
	datasetSeasons     prometheus.Gauge
	datasetDrift       prometheus.Gauge
	datasetLoadSeconds prometheus.Gauge

	// Accessor
	seasonLookups          *prometheus.CounterVec
	repositoryQueryLatency prometheus.Histogram

	// Rendering
	pageRenders        *prometheus.CounterVec
	pageRenderLatency  *prometheus.HistogramVec
	chartRenders       *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec
	exportedPages      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "blaugrana",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all metric definitions
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.datasetSeasons = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_seasons",
		Help:        "Number of seasons in the loaded dataset",
		ConstLabels: labels,
	})

	m.datasetDrift = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_drift_fields",
		Help:        "Precomputed fields that disagree with their recomputation",
		ConstLabels: labels,
	})

	m.datasetLoadSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_duration_seconds",
		Help:        "Time spent decoding and validating the dataset at start",
		ConstLabels: labels,
	})

	m.seasonLookups = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "season_lookups_total",
			Help:        "Season lookups by id, split by result (hit, miss)",
			ConstLabels: labels,
		},
		[]string{"result"},
	)

	m.repositoryQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "repository_query_latency_milliseconds",
		Help:        "Dataset accessor query latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.pageRenders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "page_renders_total",
			Help:        "Rendered HTML pages by page name",
			ConstLabels: labels,
		},
		[]string{"page"},
	)

	m.pageRenderLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "page_render_latency_milliseconds",
			Help:        "HTML page render latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"page"},
	)

	m.chartRenders = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "chart_renders_total",
			Help:        "Rendered SVG charts by chart kind",
			ConstLabels: labels,
		},
		[]string{"chart"},
	)

	m.chartRenderLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "chart_render_latency_milliseconds",
			Help:        "SVG chart render latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"chart"},
	)

	m.exportedPages = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "exported_files_total",
		Help:        "Files written by the static export",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Errors by component and error type",
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Errors by HTTP endpoint",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "error_latency_milliseconds",
			Help:        "Latency of failed operations in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Allocated heap bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// Dataset.

func UpdateDatasetSeasons(count int) {
	if globalManager.enabled {
		globalManager.datasetSeasons.Set(float64(count))
	}
}

func UpdateDatasetDrift(count int) {
	if globalManager.enabled {
		globalManager.datasetDrift.Set(float64(count))
	}
}

func UpdateDatasetLoadDuration(d time.Duration) {
	if globalManager.enabled {
		globalManager.datasetLoadSeconds.Set(d.Seconds())
	}
}

// Accessor.

// RecordSeasonLookup counts a GetSeason call; found selects the hit/miss label.
func RecordSeasonLookup(found bool) {
	if !globalManager.enabled {
		return
	}
	result := "miss"
	if found {
		result = "hit"
	}
	globalManager.seasonLookups.WithLabelValues(result).Inc()
}

func RecordRepositoryQueryLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.repositoryQueryLatency.Observe(latencyMs)
	}
}

// Rendering.

func RecordPageRender(page string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.pageRenders.WithLabelValues(page).Inc()
		globalManager.pageRenderLatency.WithLabelValues(page).Observe(latencyMs)
	}
}

func RecordChartRender(chart string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.chartRenders.WithLabelValues(chart).Inc()
		globalManager.chartRenderLatency.WithLabelValues(chart).Observe(latencyMs)
	}
}

func RecordExportedFile() {
	if globalManager.enabled {
		globalManager.exportedPages.Inc()
	}
}

// HTTP.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Errors.

func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if globalManager.enabled {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// System.

func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

func UpdateSystemGoroutineCount(count int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the package level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns the configured gauge refresh interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// Total sums every series of the named metric family in the global registry.
// name is the short name without namespace and subsystem, e.g. "page_renders_total".
func Total(name string) (float64, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, "gather"), ErrGather)
	}
	full := globalManager.namespace + "_" + globalManager.subsystem + "_" + name
	for _, mf := range families {
		if mf.GetName() != full {
			continue
		}
		var sum float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				sum += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				sum += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				sum += float64(m.GetHistogram().GetSampleCount())
			}
		}
		return sum, nil
	}
	return 0, nil
}
