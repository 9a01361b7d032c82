package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/shared/server/respond"
)

const defaultTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB and *db.Handle.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Timeout time.Duration
}

// NewService constructs a new health service.
func NewService(db Pinger) *Service {
	return &Service{DB: db, Timeout: defaultTimeout}
}

// Status reports database reachability. ok is false when any check fails.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	out := map[string]any{"ok": true, "database": "ok"}
	if s.DB == nil {
		out["database"] = "not configured"
		return out, true
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		out["ok"] = false
		out["database"] = err.Error()
		return out, false
	}
	return out, true
}

func (s *Service) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		body, ok := s.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, body)
	})
}
