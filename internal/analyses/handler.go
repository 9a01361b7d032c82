package analyses

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/shared/server/middleware"
	"hvac-ats-backend/internal/shared/server/respond"
)

const (
	maxUploadSize = 10 << 20 // 10MB
	maxBatchSize  = 100 << 20
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/candidates", h.upload)
	rg.POST("/jobs/:id/candidates/batch", h.uploadBatch)
	rg.GET("/jobs/:id/candidates", h.list)
	rg.GET("/candidates/:id", h.get)
	rg.GET("/candidates/:id/analysis", h.getAnalysis)
	rg.DELETE("/candidates/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	out, err := h.Svc.UploadAndAnalyze(requestContext(c), middleware.UserIDFromContext(c), c.Param("id"), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			var details any
			if out.Candidate.ID != "" {
				details = gin.H{"candidateId": out.Candidate.ID, "code": classifyFailure(err)}
			}
			respond.Error(c, http.StatusInternalServerError, "analysis_failed", "Failed to analyze resume", details)
		}
		return
	}
	respond.Created(c, out)
}

func (h *Handler) uploadBatch(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBatchSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "files are required", nil)
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["files[]"]
	}
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "files are required", nil)
		return
	}
	if len(headers) > MaxBatchFiles {
		respond.Error(c, http.StatusBadRequest, "too_many_files", ErrTooManyFiles.Error(), gin.H{"max": MaxBatchFiles})
		return
	}

	files, closeAll, err := openAll(headers)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer closeAll()

	batchID, created, err := h.Svc.UploadBatch(requestContext(c), middleware.UserIDFromContext(c), c.Param("id"), files)
	if err != nil {
		writeError(c, err, "failed to upload batch")
		return
	}
	respond.JSON(c, http.StatusAccepted, gin.H{"batchId": batchID, "candidates": created})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.ListCandidates(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to list candidates")
		return
	}
	respond.OK(c, gin.H{"candidates": items})
}

func (h *Handler) get(c *gin.Context) {
	cand, err := h.Svc.GetCandidate(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch candidate")
		return
	}
	respond.OK(c, cand)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	a, err := h.Svc.GetAnalysis(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch analysis")
		return
	}
	respond.OK(c, a)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.DeleteCandidate(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete candidate")
		return
	}
	c.Status(http.StatusNoContent)
}

// openAll opens every part; the returned func closes whatever was opened.
func openAll(headers []*multipart.FileHeader) ([]File, func(), error) {
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, File{Name: fh.Filename, Reader: f})
	}
	return files, closeAll, nil
}

// requestContext carries the gin request id into service logs.
func requestContext(c *gin.Context) context.Context {
	return WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, candidates.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
	case errors.Is(err, ErrTooManyFiles):
		respond.Error(c, http.StatusBadRequest, "too_many_files", err.Error(), gin.H{"max": MaxBatchFiles})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
