package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	scanTotal        *prometheus.CounterVec
	scanDuration     *prometheus.HistogramVec
	scanFiles        *prometheus.HistogramVec
	searchTotal      *prometheus.CounterVec
	searchResults    *prometheus.HistogramVec
	insightTotal     *prometheus.CounterVec
	reportBytesTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dirscope",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dirscope",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dirscope",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	scanTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dirscope",
			Subsystem: "scan",
			Name:      "total",
			Help:      "Total completed directory scans by status.",
		},
		[]string{"service", "status"},
	)
	scanDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dirscope",
			Subsystem: "scan",
			Name:      "duration_seconds",
			Help:      "Directory scan duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	scanFiles := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dirscope",
			Subsystem: "scan",
			Name:      "files",
			Help:      "Distribution of files discovered per scan.",
			Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"service"},
	)
	searchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dirscope",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total search requests by resolution tier.",
		},
		[]string{"service", "tier"},
	)
	searchResults := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dirscope",
			Subsystem: "search",
			Name:      "results",
			Help:      "Distribution of result counts per search by tier.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 50, 100},
		},
		[]string{"service", "tier"},
	)
	insightTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dirscope",
			Subsystem: "insight",
			Name:      "requests_total",
			Help:      "Total insight analyses by summary source.",
		},
		[]string{"service", "source"},
	)
	reportBytesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dirscope",
			Subsystem: "report",
			Name:      "bytes_total",
			Help:      "Total bytes of generated report downloads.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		scanTotal,
		scanDuration,
		scanFiles,
		searchTotal,
		searchResults,
		insightTotal,
		reportBytesTotal,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		scanTotal:        scanTotal,
		scanDuration:     scanDuration,
		scanFiles:        scanFiles,
		searchTotal:      searchTotal,
		searchResults:    searchResults,
		insightTotal:     insightTotal,
		reportBytesTotal: reportBytesTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path
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

func (m *HTTPServerMetrics) RecordScan(service string, fileCount int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.scanTotal.WithLabelValues(service, status).Inc()
	if err == nil {
		m.scanDuration.WithLabelValues(service).Observe(duration.Seconds())
		m.scanFiles.WithLabelValues(service).Observe(float64(fileCount))
	}
}

func (m *HTTPServerMetrics) RecordInsight(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.insightTotal.WithLabelValues(service, source).Inc()
}

func (m *HTTPServerMetrics) RecordReportBytes(service string, n int) {
	if n <= 0 {
		return
	}
	m.reportBytesTotal.WithLabelValues(service).Add(float64(n))
}

// SearchObserver binds the search counters to one service label so the
// resolver can report tiers without knowing about Prometheus.
type SearchObserver struct {
	service string
	metrics *HTTPServerMetrics
}

func (m *HTTPServerMetrics) SearchObserver(service string) *SearchObserver {
	return &SearchObserver{service: service, metrics: m}
}

func (o *SearchObserver) ObserveSearch(tier string, results int) {
	if tier == "" {
		tier = "unknown"
	}
	o.metrics.searchTotal.WithLabelValues(o.service, tier).Inc()
	o.metrics.searchResults.WithLabelValues(o.service, tier).Observe(float64(results))
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

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
