package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/analyses"
	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/shared/server/middleware"
	"hvac-ats-backend/internal/shared/server/respond"
	"hvac-ats-backend/internal/shared/validate"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler serves the unauthenticated apply and status routes. Per-IP rate
// limiting is applied by the router.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/public/jobs/:id/apply", h.apply)
	rg.GET("/public/applications/:id/status", h.status)
}

func (h *Handler) apply(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	in := Input{
		Name:          c.PostForm("name"),
		Email:         c.PostForm("email"),
		Phone:         c.PostForm("phone"),
		VehicleStatus: c.PostForm("vehicleStatus"),
	}
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	ctx := analyses.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	cand, err := h.Svc.Apply(ctx, c.Param("id"), in, fileHeader.Filename, file)
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Fields)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found or no longer accepting applications", nil)
		case errors.Is(err, analyses.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}
	respond.Created(c, gin.H{"success": true, "candidateId": cand.ID})
}

func (h *Handler) status(c *gin.Context) {
	status, err := h.Svc.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch status", nil)
		return
	}
	respond.OK(c, gin.H{"status": status})
}
