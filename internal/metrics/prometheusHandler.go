package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of ingest jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var chunksStored = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "chunks_stored",
	Help: "Number of chunks currently held in the vector store",
})

var embeddingFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "embedding_failures_total",
	Help: "Chunks dropped because their embedding call failed",
})

var statusEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "status_events_total",
	Help: "Core state transitions by state name",
}, []string{"state"})

var searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "searches_total",
	Help: "Retrieval queries by outcome (results / empty / error)",
}, []string{"outcome"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) CaptureWriteHeaderMetrics(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func AddChunksStored(n int) {
	chunksStored.Add(float64(n))
}

func RemoveChunksStored(n int) {
	chunksStored.Sub(float64(n))
}

func AddEmbeddingFailures(n int) {
	embeddingFailuresTotal.Add(float64(n))
}

func CountStatusEvent(state string) {
	statusEventsTotal.WithLabelValues(state).Inc()
}

func CountSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ingest_job_duration_seconds",
	Help:    "Total time spent on one ingest job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
