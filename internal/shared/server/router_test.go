package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/shared/config"
)

type stubRoutes struct{}

func (stubRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	rg.GET("/jobs", ok)
	rg.POST("/public/jobs/:id/apply", ok)
	rg.GET("/public/jobs/:id", ok)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Config: config.Config{Env: "dev", PublicApplyRate: 0.01, PublicApplyBurst: 2},
		Routes: []Routes{stubRoutes{}, nil},
	})
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	r.ServeHTTP(resp, req)
	return resp
}

func TestRouterRequiresTokenOutsidePublicRoutes(t *testing.T) {
	r := newTestRouter()
	if got := serve(r, http.MethodGet, "/api/v1/jobs").Code; got != http.StatusUnauthorized {
		t.Fatalf("GET /jobs = %d, want 401", got)
	}
	if got := serve(r, http.MethodGet, "/api/v1/public/jobs/j1").Code; got != http.StatusOK {
		t.Fatalf("GET /public/jobs/j1 = %d, want 200", got)
	}
	resp := serve(r, http.MethodGet, "/api/v1/metrics")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "analysis_started_total") {
		t.Fatalf("metrics = %d %q", resp.Code, resp.Body.String())
	}
}

func TestRouterRateLimitsPublicApply(t *testing.T) {
	r := newTestRouter()
	for i := 0; i < 2; i++ {
		if got := serve(r, http.MethodPost, "/api/v1/public/jobs/j1/apply").Code; got != http.StatusOK {
			t.Fatalf("apply %d = %d, want 200", i, got)
		}
	}
	resp := serve(r, http.MethodPost, "/api/v1/public/jobs/j1/apply")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("third apply = %d, want 429", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
	// Job reads share the IP but not the bucket.
	if got := serve(r, http.MethodGet, "/api/v1/public/jobs/j1").Code; got != http.StatusOK {
		t.Fatalf("GET after limit = %d, want 200", got)
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9090": ":9090", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
