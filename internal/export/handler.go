package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/pipeline"
	"hvac-ats-backend/internal/shared/server/middleware"
	"hvac-ats-backend/internal/shared/server/respond"
)

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobReader interface {
	Get(ctx context.Context, employerID, jobID string) (jobs.Job, error)
}

type PipelineLister interface {
	ListByJob(ctx context.Context, jobID string, f pipeline.Filter) ([]pipeline.Entry, error)
}

type Handler struct {
	Jobs     JobReader
	Pipeline PipelineLister
	Now      func() time.Time
}

func NewHandler(jobs JobReader, p PipelineLister) *Handler {
	return &Handler{Jobs: jobs, Pipeline: p, Now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/pipeline/export", h.export)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (h *Handler) export(c *gin.Context) {
	ctx := c.Request.Context()
	job, err := h.Jobs.Get(ctx, middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export pipeline", nil)
		return
	}
	entries, err := h.Pipeline.ListByJob(ctx, job.ID, pipeline.Filter{})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export pipeline", nil)
		return
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, job, entries, h.Now()); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export pipeline", nil)
		return
	}
	name := unsafeName.ReplaceAllString(job.Title, "_")
	if name == "" {
		name = "pipeline"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-pipeline.xlsx"`, name))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
