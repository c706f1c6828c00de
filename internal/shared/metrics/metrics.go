package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	analysisStartedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "analysis_started_total",
		Help: "Total analyses started",
	})
	analysisCompletedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "analysis_completed_total",
		Help: "Total analyses completed",
	})
	analysisFailedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_failed_total",
		Help: "Total analyses failed",
	}, []string{"reason"})
	analysisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
	enrichmentTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "enrichment_requests_total",
		Help: "Enrichment provider calls by outcome",
	}, []string{"outcome"})
	enrichmentCacheTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "enrichment_cache_total",
		Help: "Enrichment cache lookups by result",
	}, []string{"result"})
	uploadsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "document_uploads_total",
		Help: "Document uploads by result",
	}, []string{"result"})
	uploadBytes = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "document_upload_bytes",
		Help:    "Size of accepted uploads in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 7),
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Inc()
}

// IncAnalysisFailed increments the failed counter for reason.
func IncAnalysisFailed(reason string) {
	analysisFailedTotal.WithLabelValues(reason).Inc()
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// IncEnrichment counts one enrichment attempt by outcome.
func IncEnrichment(outcome string) {
	enrichmentTotal.WithLabelValues(outcome).Inc()
}

// IncEnrichmentCache counts one cache lookup; result is hit, miss or error.
func IncEnrichmentCache(result string) {
	enrichmentCacheTotal.WithLabelValues(result).Inc()
}

// IncUpload counts one upload attempt by result.
func IncUpload(result string) {
	uploadsTotal.WithLabelValues(result).Inc()
}

// ObserveUploadBytes records the size of an accepted upload.
func ObserveUploadBytes(size int64) {
	uploadBytes.Observe(float64(size))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
