package jobs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/shared/storage/db/dbtest"
)

type testEnv struct {
	router   *gin.Engine
	owner    string
	stranger string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := dbtest.NewSQLite(t)
	env := testEnv{
		owner:    dbtest.SeedUser(t, h, "owner@example.com"),
		stranger: dbtest.SeedUser(t, h, "other@example.com"),
	}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	})
	NewHandler(NewService(&SQLRepo{DB: h})).RegisterRoutes(r.Group("/api/v1"))
	env.router = r
	return env
}

func (e testEnv) do(method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func TestJobLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/jobs", env.owner, map[string]any{
		"title":                   "Service Tech - North",
		"position":                "HVAC Service Technician",
		"requiredYearsExperience": 5,
		"vehicleRequired":         true,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created Job
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.True(t, created.FlexibleOnTitle, "flexibleOnTitle defaults to true")
	assert.Equal(t, StatusOpen, created.Status)

	resp = env.do(http.MethodGet, "/api/v1/jobs/"+created.ID, env.stranger, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code, "other employers cannot read the job")

	resp = env.do(http.MethodPut, "/api/v1/jobs/"+created.ID, env.owner, map[string]any{
		"title":                   "Service Tech - North",
		"position":                "HVAC Service Technician",
		"requiredYearsExperience": 3,
		"flexibleOnTitle":         false,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var updated Job
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.False(t, updated.FlexibleOnTitle)
	assert.Equal(t, 3.0, updated.RequiredYearsExperience)

	resp = env.do(http.MethodGet, "/api/v1/public/jobs/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "employerId")

	resp = env.do(http.MethodPost, "/api/v1/jobs/"+created.ID+"/close", env.owner, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(http.MethodGet, "/api/v1/public/jobs/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code, "closed jobs are hidden from applicants")

	resp = env.do(http.MethodGet, "/api/v1/jobs", env.owner, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var listed struct {
		Jobs []Job `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Len(t, listed.Jobs, 1)

	resp = env.do(http.MethodDelete, "/api/v1/jobs/"+created.ID, env.stranger, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = env.do(http.MethodDelete, "/api/v1/jobs/"+created.ID, env.owner, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestCreateJobValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{name: "missing title", body: map[string]any{"position": "Dispatcher"}, want: "title is required"},
		{name: "missing position", body: map[string]any{"title": "x"}, want: "position is required"},
		{name: "negative years", body: map[string]any{"title": "x", "position": "Dispatcher", "requiredYearsExperience": -1}, want: "requiredYearsExperience"},
		{name: "too many years", body: map[string]any{"title": "x", "position": "Dispatcher", "requiredYearsExperience": 51}, want: "requiredYearsExperience"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(http.MethodPost, "/api/v1/jobs", env.owner, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.want)
		})
	}
}
