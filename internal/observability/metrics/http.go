package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysisBatchesTotal *prometheus.CounterVec
	analysisResultsTotal *prometheus.CounterVec
	analysisBatchSize    *prometheus.HistogramVec
	analysisDuration     *prometheus.HistogramVec
	exportsTotal         *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ars",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ars",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ars",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysisBatchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ars",
			Subsystem: "analysis",
			Name:      "batches_total",
			Help:      "Total completed analysis batches.",
		},
		[]string{"service"},
	)
	analysisResultsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ars",
			Subsystem: "analysis",
			Name:      "results_total",
			Help:      "Total per-resume analysis results by status.",
		},
		[]string{"service", "status"},
	)
	analysisBatchSize := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ars",
			Subsystem: "analysis",
			Name:      "batch_size",
			Help:      "Distribution of resumes per analysis batch.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
		[]string{"service"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ars",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Analysis batch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ars",
			Subsystem: "export",
			Name:      "reports_total",
			Help:      "Total exported reports by format.",
		},
		[]string{"service", "format"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysisBatchesTotal,
		analysisResultsTotal,
		analysisBatchSize,
		analysisDuration,
		exportsTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		analysisBatchesTotal: analysisBatchesTotal,
		analysisResultsTotal: analysisResultsTotal,
		analysisBatchSize:    analysisBatchSize,
		analysisDuration:     analysisDuration,
		exportsTotal:         exportsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/analyzer/reports/"):
		return "/api/analyzer/reports/{report_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordAnalysisBatch(service string, batchSize, success, failed int, duration time.Duration) {
	m.analysisBatchesTotal.WithLabelValues(service).Inc()
	m.analysisBatchSize.WithLabelValues(service).Observe(float64(batchSize))
	m.analysisDuration.WithLabelValues(service).Observe(duration.Seconds())

	if success > 0 {
		m.analysisResultsTotal.WithLabelValues(service, "success").Add(float64(success))
	}
	if failed > 0 {
		m.analysisResultsTotal.WithLabelValues(service, "error").Add(float64(failed))
	}
}

func (m *HTTPServerMetrics) RecordExport(service, format string) {
	if format == "" {
		format = "unknown"
	}
	m.exportsTotal.WithLabelValues(service, format).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
