package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bonsai-backend/internal/bonsai"
	"bonsai-backend/internal/reports"
	"bonsai-backend/internal/services/health"
	"bonsai-backend/internal/shared/config"
	"bonsai-backend/internal/shared/metrics"
	"bonsai-backend/internal/shared/server/middleware"
	"bonsai-backend/internal/uploads"
	"bonsai-backend/internal/workrecords"
	"bonsai-backend/internal/workschedules"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config    config.Config
	Health    *health.Service
	Bonsai    *bonsai.Handler
	Records   *workrecords.Handler
	Schedules *workschedules.Handler
	Reports   *reports.Handler
	Uploads   *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Health and metrics stay outside auth; everything else requires a bearer token.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status())
	})
	api.GET("/metrics", metrics.Handler())

	authed := api.Group("")
	authed.Use(
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"REPORTS": {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.FullPath() == "/api/v1/reports/generate" {
					return "REPORTS"
				}
				return ""
			},
		}),
	)

	deps.Bonsai.RegisterRoutes(authed)
	deps.Records.RegisterRoutes(authed)
	deps.Schedules.RegisterRoutes(authed)
	deps.Reports.RegisterRoutes(authed)
	deps.Uploads.RegisterRoutes(authed)

	return r
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
