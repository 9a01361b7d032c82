package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/shared/server/middleware"
	"hvac-ats-backend/internal/shared/server/respond"
	"hvac-ats-backend/internal/shared/validate"
)

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
	rg.PUT("/jobs/:id", h.update)
	rg.POST("/jobs/:id/close", h.close)
	rg.DELETE("/jobs/:id", h.delete)
	rg.GET("/public/jobs/:id", h.getPublic)
}

func (h *Handler) create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, "failed to create job")
		return
	}
	respond.Created(c, job)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list jobs")
		return
	}
	respond.OK(c, gin.H{"jobs": items})
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch job")
		return
	}
	respond.OK(c, job)
}

func (h *Handler) update(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	job, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err, "failed to update job")
		return
	}
	respond.OK(c, job)
}

func (h *Handler) close(c *gin.Context) {
	job, err := h.Svc.Close(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to close job")
		return
	}
	respond.OK(c, job)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getPublic(c *gin.Context) {
	job, err := h.Svc.GetOpen(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch job")
		return
	}
	respond.OK(c, job.Public())
}

func bindInput(c *gin.Context) (Input, bool) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return Input{}, false
	}
	if err := validate.Struct(in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return Input{}, false
	}
	return in, true
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
