package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/jobs"
)

type ownerOnly struct {
	owner string
}

func (o ownerOnly) Owns(ctx context.Context, employerID, jobID string) error {
	if employerID != o.owner {
		return jobs.ErrNotFound
	}
	return nil
}

func newHandlerRouter(repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", c.GetHeader("X-Test-User"))
		c.Next()
	})
	NewHandler(NewService(repo), ownerOnly{owner: "emp-1"}).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func send(r http.Handler, method, path, user string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestInvalidTransitionResponse(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo, "p1", StatusRejected)
	r := newHandlerRouter(repo)

	resp := send(r, http.MethodPatch, "/api/v1/pipeline/p1/status", "emp-1", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details struct {
				From    string   `json:"from"`
				To      string   `json:"to"`
				Allowed []string `json:"allowed"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "invalid_transition", body.Error.Code)
	assert.Equal(t, "Invalid status transition from 'rejected' to 'approved'. Allowed transitions: none (terminal state)", body.Error.Message)
	assert.Equal(t, "rejected", body.Error.Details.From)
	assert.Equal(t, "approved", body.Error.Details.To)
	assert.Empty(t, body.Error.Details.Allowed)
}

func TestStatusUpdateFlow(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo, "p1", StatusNew)
	r := newHandlerRouter(repo)

	resp := send(r, http.MethodPatch, "/api/v1/pipeline/p1/status", "emp-2", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, resp.Code, "other employers cannot move the entry")

	resp = send(r, http.MethodPatch, "/api/v1/pipeline/p1/status", "emp-1", map[string]string{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = send(r, http.MethodPatch, "/api/v1/pipeline/p1/status", "emp-1", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"pipelineStatus":"approved"`)

	resp = send(r, http.MethodGet, "/api/v1/pipeline/p1/history", "emp-1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"fromStatus":"new"`)

	resp = send(r, http.MethodPatch, "/api/v1/pipeline/p1/notes", "emp-1", map[string]string{"notes": "strong EPA cert"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "strong EPA cert")

	resp = send(r, http.MethodPatch, "/api/v1/pipeline/p1/chance", "emp-1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	resp = send(r, http.MethodPatch, "/api/v1/pipeline/p1/chance", "emp-1", map[string]any{"giveThemAChance": true})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"giveThemAChance":true`)
}

func TestBulkStatusHandler(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo, "a", StatusNew)
	seed(t, repo, "b", StatusRejected)
	r := newHandlerRouter(repo)

	resp := send(r, http.MethodPost, "/api/v1/pipeline/bulk-status", "emp-1", map[string]any{"ids": []string{"a", "b"}, "status": "backup"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid_transition")

	resp = send(r, http.MethodPost, "/api/v1/pipeline/bulk-status", "emp-1", map[string]any{"ids": []string{"a"}, "status": "backup"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"updated":1`)

	resp = send(r, http.MethodPost, "/api/v1/pipeline/bulk-status", "emp-1", map[string]any{"ids": []string{}, "status": "backup"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListFilters(t *testing.T) {
	repo := NewMemoryRepo()
	seed(t, repo, "a", StatusNew)
	r := newHandlerRouter(repo)

	resp := send(r, http.MethodGet, "/api/v1/jobs/job-1/pipeline?tier=purple", "emp-1", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = send(r, http.MethodGet, "/api/v1/jobs/job-1/pipeline?status=new&tier=green", "emp-1", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":"a"`)
}
