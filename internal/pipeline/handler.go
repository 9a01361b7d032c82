package pipeline

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/shared/server/middleware"
	"hvac-ats-backend/internal/shared/server/respond"
	"hvac-ats-backend/internal/shared/validate"
)

// JobAccess checks that an employer owns a job.
type JobAccess interface {
	Owns(ctx context.Context, employerID, jobID string) error
}

// Handler wires HTTP handlers to the pipeline service.
type Handler struct {
	Svc  *Service
	Jobs JobAccess
}

func NewHandler(svc *Service, jobAccess JobAccess) *Handler {
	return &Handler{Svc: svc, Jobs: jobAccess}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/pipeline", h.list)
	rg.POST("/pipeline/bulk-status", h.bulkStatus)
	rg.PATCH("/pipeline/:id/status", h.updateStatus)
	rg.PATCH("/pipeline/:id/notes", h.updateNotes)
	rg.PATCH("/pipeline/:id/chance", h.updateChance)
	rg.GET("/pipeline/:id/history", h.history)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=200,dive,required"`
	Status string   `json:"status" validate:"required"`
}

type notesRequest struct {
	Notes string `json:"notes" validate:"max=10000"`
}

type chanceRequest struct {
	GiveThemAChance *bool `json:"giveThemAChance" validate:"required"`
}

func (h *Handler) list(c *gin.Context) {
	jobID := c.Param("id")
	if !h.authorizeJob(c, jobID) {
		return
	}
	var f Filter
	if raw := c.Query("status"); raw != "" {
		status, ok := ParseStatus(raw)
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status filter", nil)
			return
		}
		f.Status = status
	}
	switch tier := c.Query("tier"); tier {
	case "", "green", "yellow", "red":
		f.Tier = tier
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "tier must be one of green, yellow, red", nil)
		return
	}

	entries, err := h.Svc.ListByJob(c.Request.Context(), jobID, f)
	if err != nil {
		writeError(c, err, "failed to list pipeline")
		return
	}
	respond.OK(c, gin.H{"entries": entries})
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req) {
		return
	}
	to, ok := ParseStatus(req.Status)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
		return
	}
	id := c.Param("id")
	if _, ok := h.authorizeEntry(c, id); !ok {
		return
	}
	entry, err := h.Svc.UpdateStatus(c.Request.Context(), id, to, middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to update status")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) bulkStatus(c *gin.Context) {
	var req bulkStatusRequest
	if !bind(c, &req) {
		return
	}
	to, ok := ParseStatus(req.Status)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
		return
	}
	entries, err := h.Svc.GetMany(c.Request.Context(), req.IDs)
	if err != nil {
		writeError(c, err, "failed to update status")
		return
	}
	checked := map[string]bool{}
	for _, e := range entries {
		if checked[e.JobID] {
			continue
		}
		if !h.authorizeJob(c, e.JobID) {
			return
		}
		checked[e.JobID] = true
	}

	updated, err := h.Svc.BulkUpdateStatus(c.Request.Context(), req.IDs, to, middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to update status")
		return
	}
	respond.OK(c, gin.H{"updated": len(updated), "entries": updated})
}

func (h *Handler) updateNotes(c *gin.Context) {
	var req notesRequest
	if !bind(c, &req) {
		return
	}
	id := c.Param("id")
	if _, ok := h.authorizeEntry(c, id); !ok {
		return
	}
	entry, err := h.Svc.SetNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		writeError(c, err, "failed to update notes")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) updateChance(c *gin.Context) {
	var req chanceRequest
	if !bind(c, &req) {
		return
	}
	id := c.Param("id")
	if _, ok := h.authorizeEntry(c, id); !ok {
		return
	}
	entry, err := h.Svc.SetChance(c.Request.Context(), id, *req.GiveThemAChance)
	if err != nil {
		writeError(c, err, "failed to update flag")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) history(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.authorizeEntry(c, id); !ok {
		return
	}
	items, err := h.Svc.History(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to load history")
		return
	}
	respond.OK(c, gin.H{"history": items})
}

// authorizeEntry loads the entry and checks the caller owns its job.
func (h *Handler) authorizeEntry(c *gin.Context, id string) (Entry, bool) {
	entry, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to load pipeline entry")
		return Entry{}, false
	}
	if !h.authorizeJob(c, entry.JobID) {
		return Entry{}, false
	}
	return entry, true
}

func (h *Handler) authorizeJob(c *gin.Context, jobID string) bool {
	if h.Jobs == nil {
		return true
	}
	err := h.Jobs.Owns(c.Request.Context(), middleware.UserIDFromContext(c), jobID)
	switch {
	case err == nil:
		return true
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load job", nil)
	}
	return false
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return false
	}
	return true
}

func writeError(c *gin.Context, err error, fallback string) {
	var terr *TransitionError
	switch {
	case errors.As(err, &terr):
		respond.Error(c, terr.StatusCode(), "invalid_transition", terr.Error(), gin.H{
			"from":    terr.From,
			"to":      terr.To,
			"allowed": terr.Allowed,
		})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "pipeline entry not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "pipeline entry changed, reload and retry", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
