package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	scanTotal    *prometheus.CounterVec
	scanDuration *prometheus.HistogramVec
	scanInFlight prometheus.Gauge
	scanFiles    *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	scanTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dirscope",
			Subsystem: "worker",
			Name:      "scan_total",
			Help:      "Total processed scan requests by status.",
		},
		[]string{"service", "status"},
	)
	scanDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dirscope",
			Subsystem: "worker",
			Name:      "scan_duration_seconds",
			Help:      "Scan processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	scanInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dirscope",
			Subsystem: "worker",
			Name:      "scan_in_flight",
			Help:      "Number of in-flight scan tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	scanFiles := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dirscope",
			Subsystem: "worker",
			Name:      "scan_files",
			Help:      "Distribution of files discovered per processed scan.",
			Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"service"},
	)

	registry.MustRegister(scanTotal, scanDuration, scanInFlight, scanFiles)

	return &WorkerMetrics{
		registry:     registry,
		scanTotal:    scanTotal,
		scanDuration: scanDuration,
		scanInFlight: scanInFlight,
		scanFiles:    scanFiles,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartScan() {
	m.scanInFlight.Inc()
}

func (m *WorkerMetrics) FinishScan(service string, fileCount int, duration time.Duration, err error) {
	m.scanInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.scanTotal.WithLabelValues(service, status).Inc()
	m.scanDuration.WithLabelValues(service, status).Observe(duration.Seconds())
	if err == nil {
		m.scanFiles.WithLabelValues(service).Observe(float64(fileCount))
	}
}
