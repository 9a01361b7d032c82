package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRenderIncludesCounters(t *testing.T) {
	IncAnalysisStarted()
	IncPipelineTransition()
	IncCommunicationFailed()
	ObserveAnalysisDurationMs(1500)

	out := Render()
	for _, want := range []string{
		"# TYPE analysis_started_total counter",
		"pipeline_transitions_total ",
		"communications_failed_total ",
		`analysis_duration_ms_bucket{le="2500"}`,
		`analysis_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 20})
	h.Observe(5)
	h.Observe(15)
	h.Observe(25)
	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 45 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
}

func TestHandlerServesText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("content type = %q", w.Header().Get("Content-Type"))
	}
}
