package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request. Handlers add entity ids with
// c.Set("jobId" | "candidateId" | "pipelineId" | "statusTransition").
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"status":            c.Writer.Status(),
			"status_transition": c.GetString("statusTransition"),
			"duration_ms":       float64(latency.Microseconds()) / 1000.0,
			"user_id":           UserIDFromContext(c),
			"job_id":            c.GetString("jobId"),
			"candidate_id":      c.GetString("candidateId"),
			"pipeline_id":       c.GetString("pipelineId"),
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		})
	}
}
