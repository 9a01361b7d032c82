package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hvac-ats-backend/internal/shared/config"
	"hvac-ats-backend/internal/shared/metrics"
	"hvac-ats-backend/internal/shared/server/middleware"
)

const (
	groupPublicApply = "PUBLIC_APPLY"
	groupPolling     = "POLLING"
)

// Routes is implemented by every feature handler.
type Routes interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type RouterDeps struct {
	Config  config.Config
	Routes  []Routes
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				groupPublicApply: {Rate: deps.Config.PublicApplyRate, Burst: deps.Config.PublicApplyBurst},
				groupPolling:     {Rate: 2, Burst: 10},
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/metrics", metrics.Handler())
	for _, routes := range deps.Routes {
		if routes != nil {
			routes.RegisterRoutes(api)
		}
	}
	return r
}

// rateLimitGroup limits only the unauthenticated applicant routes.
func rateLimitGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/public/jobs/:id/apply":
		if c.Request.Method == http.MethodPost {
			return groupPublicApply
		}
	case "/api/v1/public/applications/:id/status":
		return groupPolling
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
