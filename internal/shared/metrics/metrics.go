package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	analysisStartedTotal   atomic.Uint64
	analysisCompletedTotal atomic.Uint64
	analysisFailedTotal    atomic.Uint64
	llmRetriesTotal        atomic.Uint64

	pipelineTransitionsTotal atomic.Uint64
	pipelineRejectedTotal    atomic.Uint64

	communicationsSentTotal   atomic.Uint64
	communicationsFailedTotal atomic.Uint64

	publicAppliesTotal atomic.Uint64

	workerReceivedTotal      atomic.Uint64
	workerCompletedTotal     atomic.Uint64
	workerFailedTotal        atomic.Uint64
	workerUnrecoverableTotal atomic.Uint64

	analysisDuration = newHistogram([]float64{1000, 2500, 5000, 10000, 20000, 30000, 60000, 120000})
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	analysisStartedTotal.Add(1)
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	analysisCompletedTotal.Add(1)
}

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() {
	analysisFailedTotal.Add(1)
}

// IncLLMRetry counts a retried LLM call.
func IncLLMRetry() {
	llmRetriesTotal.Add(1)
}

// IncPipelineTransition counts an accepted status change.
func IncPipelineTransition() {
	pipelineTransitionsTotal.Add(1)
}

// IncPipelineTransitionRejected counts a status change refused by the state machine.
func IncPipelineTransitionRejected() {
	pipelineRejectedTotal.Add(1)
}

// IncCommunicationSent counts a delivered message.
func IncCommunicationSent() {
	communicationsSentTotal.Add(1)
}

// IncCommunicationFailed counts a message the sender refused.
func IncCommunicationFailed() {
	communicationsFailedTotal.Add(1)
}

// IncPublicApply counts accepted public applications.
func IncPublicApply() {
	publicAppliesTotal.Add(1)
}

// IncWorkerReceived counts a queue message picked up by the worker.
func IncWorkerReceived() {
	workerReceivedTotal.Add(1)
}

// IncWorkerCompleted counts a message processed and deleted.
func IncWorkerCompleted() {
	workerCompletedTotal.Add(1)
}

// IncWorkerFailed counts a message left on the queue for redelivery.
func IncWorkerFailed() {
	workerFailedTotal.Add(1)
}

// IncWorkerUnrecoverable counts a malformed message deleted without processing.
func IncWorkerUnrecoverable() {
	workerUnrecoverableTotal.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analysis_started_total", "Total analyses started", analysisStartedTotal.Load())
	writeCounter(&buf, "analysis_completed_total", "Total analyses completed", analysisCompletedTotal.Load())
	writeCounter(&buf, "analysis_failed_total", "Total analyses failed", analysisFailedTotal.Load())
	writeCounter(&buf, "llm_retries_total", "Total retried LLM calls", llmRetriesTotal.Load())
	writeCounter(&buf, "pipeline_transitions_total", "Total accepted pipeline status changes", pipelineTransitionsTotal.Load())
	writeCounter(&buf, "pipeline_transitions_rejected_total", "Total rejected pipeline status changes", pipelineRejectedTotal.Load())
	writeCounter(&buf, "communications_sent_total", "Total candidate messages sent", communicationsSentTotal.Load())
	writeCounter(&buf, "communications_failed_total", "Total candidate messages failed", communicationsFailedTotal.Load())
	writeCounter(&buf, "public_applies_total", "Total public applications accepted", publicAppliesTotal.Load())
	writeCounter(&buf, "worker_messages_received_total", "Total queue messages received", workerReceivedTotal.Load())
	writeCounter(&buf, "worker_messages_completed_total", "Total queue messages processed", workerCompletedTotal.Load())
	writeCounter(&buf, "worker_messages_failed_total", "Total queue messages left for redelivery", workerFailedTotal.Load())
	writeCounter(&buf, "worker_messages_unrecoverable_total", "Total malformed queue messages deleted", workerUnrecoverableTotal.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMs returns the elapsed milliseconds since start.
func SinceMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
