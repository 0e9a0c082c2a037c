// Package metrics provides Prometheus metrics for geoplot renders.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stage labels.
const (
	StageReduce   = "reduce"
	StageTimeline = "timeline"
	StageBuild    = "build"
	StageGeoJSON  = "geojson"
	StagePage     = "page"
)

// Output kind labels.
const (
	OutputGeoJSON = "geojson"
	OutputHTML    = "html"
)

// Manager owns every geoplot metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer
	gatherer         prometheus.Gatherer

	// Render throughput
	rendersTotal     prometheus.Counter
	renderErrors     *prometheus.CounterVec
	renderDuration   prometheus.Histogram
	stageDuration    *prometheus.HistogramVec
	lastRenderUnix   prometheus.Gauge
	featuresEmitted  prometheus.Counter
	outputBytesTotal *prometheus.CounterVec

	// Shape of the last render
	entities        prometheus.Gauge
	featureVectors  prometheus.Gauge
	timestampSlots  prometheus.Gauge
	trajectorySteps prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Default returns the process-wide manager registered on GetRegistry().
func Default() *Manager {
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "geoplot",
		subsystem:        "render",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
		gatherer:         prometheus.DefaultGatherer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rendersTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "renders_total",
		Help:        "Total number of completed renders",
		ConstLabels: m.constLabels,
	})

	m.renderErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Total number of failed renders by pipeline stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_milliseconds",
		Help:        "End-to-end render duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_milliseconds",
		Help:        "Duration of each pipeline stage in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.lastRenderUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_unix",
		Help:        "Unix timestamp of the last successful render",
		ConstLabels: m.constLabels,
	})

	m.featuresEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "features_emitted_total",
		Help:        "Total number of GeoJSON features written",
		ConstLabels: m.constLabels,
	})

	m.outputBytesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "output_bytes_total",
		Help:        "Total bytes written by output kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.entities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entities",
		Help:        "Number of entities in the last render",
		ConstLabels: m.constLabels,
	})

	m.featureVectors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "feature_vectors",
		Help:        "Number of sampled episodes in the last render",
		ConstLabels: m.constLabels,
	})

	m.timestampSlots = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "timestamp_slots",
		Help:        "Number of generated timestamps in the last render",
		ConstLabels: m.constLabels,
	})

	m.trajectorySteps = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "trajectory_steps",
		Help:        "Number of snapshots in the last rendered trajectory",
		ConstLabels: m.constLabels,
	})
}

// RecordRender records a successful render and its duration.
func (m *Manager) RecordRender(d time.Duration) {
	m.rendersTotal.Inc()
	m.renderDuration.Observe(ms(d))
	m.lastRenderUnix.SetToCurrentTime()
}

// RecordError counts a failed render at stage.
func (m *Manager) RecordError(stage string) {
	m.renderErrors.WithLabelValues(stage).Inc()
}

// RecordStage observes the duration of one pipeline stage.
func (m *Manager) RecordStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(ms(d))
}

// RecordShape sets the shape gauges of the current render.
func (m *Manager) RecordShape(steps, entities, vectors, slots int) {
	m.trajectorySteps.Set(float64(steps))
	m.entities.Set(float64(entities))
	m.featureVectors.Set(float64(vectors))
	m.timestampSlots.Set(float64(slots))
}

// RecordFeatures adds n emitted features.
func (m *Manager) RecordFeatures(n int) {
	m.featuresEmitted.Add(float64(n))
}

// RecordOutput adds n bytes written for an output kind.
func (m *Manager) RecordOutput(kind string, n int64) {
	m.outputBytesTotal.WithLabelValues(kind).Add(float64(n))
}

// WriteTextfile dumps every metric gathered from the manager's registry in the
// Prometheus text format, for node_exporter's textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if m.gatherer == nil {
		return fmt.Errorf("%w: registry cannot be gathered", ErrWriteTextfile)
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
