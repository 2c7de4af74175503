package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	requestsTotal     *prometheus.CounterVec
	latencySeconds    *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	activityTotal     *prometheus.CounterVec
	uploadRequests    *prometheus.CounterVec
	uploadRejected    *prometheus.CounterVec
	uploadLatencyHist prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the CMS API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cms_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_errors_total",
			Help: "Total number of error responses returned.",
		}, []string{"method", "route", "status"})

		activityTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_activity_logs_total",
			Help: "Activity log records written, by action and actor type.",
		}, []string{"action", "actor_type"})

		uploadRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_upload_requests_total",
			Help: "Accepted media uploads by detected MIME type.",
		}, []string{"mime"})

		uploadRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_upload_rejected_total",
			Help: "Rejected media uploads by rejection reason.",
		}, []string{"reason"})

		uploadLatencyHist = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cms_upload_latency_seconds",
			Help:    "End-to-end latency of media uploads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		prometheus.MustRegister(
			requestsTotal, latencySeconds, errorsTotal,
			activityTotal, uploadRequests, uploadRejected, uploadLatencyHist,
		)
	})
}

// Requests exposes the counter for served requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for served requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// ActivityLogsWritten exposes the counter for persisted activity records.
func ActivityLogsWritten() *prometheus.CounterVec {
	RegisterMetrics()
	return activityTotal
}

// UploadRequests exposes the counter for accepted uploads.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequests
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejected
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencyHist
}
