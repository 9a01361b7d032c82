package communications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/pipeline"
	"hvac-ats-backend/internal/shared/server/middleware"
	"hvac-ats-backend/internal/shared/server/respond"
	"hvac-ats-backend/internal/shared/validate"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/pipeline/:id/communications", h.send)
	rg.GET("/pipeline/:id/communications", h.list)
}

func (h *Handler) send(c *gin.Context) {
	var in SendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	msg, err := h.Svc.Send(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), in)
	if err != nil {
		var verr *validate.Error
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Fields)
		case errors.Is(err, pipeline.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "pipeline entry not found", nil)
		case errors.Is(err, ErrNoRecipient):
			respond.Error(c, http.StatusUnprocessableEntity, "no_recipient", err.Error(), nil)
		case errors.Is(err, ErrNotConnected):
			respond.Error(c, http.StatusConflict, "gmail_not_connected", err.Error(), gin.H{"messageId": msg.ID})
		case errors.Is(err, ErrDeliveryFailed):
			respond.Error(c, http.StatusBadGateway, "send_failed", "failed to send message", gin.H{"messageId": msg.ID})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to send message", nil)
		}
		return
	}
	respond.Created(c, msg)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, pipeline.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "pipeline entry not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list communications", nil)
		return
	}
	respond.OK(c, gin.H{"communications": items})
}
