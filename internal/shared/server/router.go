package server

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/services/health"
	"gamelog-gateway/internal/shared/config"
	"gamelog-gateway/internal/shared/metrics"
	"gamelog-gateway/internal/shared/server/middleware"
	"gamelog-gateway/internal/shared/server/respond"
	"gamelog-gateway/internal/uploads"
)

// RouterDeps holds everything NewRouter wires.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	UploadHandler *uploads.Handler
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = false

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(deps.RateLimiter),
		middleware.BodyLimit(deps.Config.MaxUploadBytes),
	)

	api := r.Group("/api")
	api.GET("/health", deps.Health.Handler())
	deps.UploadHandler.RegisterRoutes(api)

	if deps.Config.MetricsEnabled {
		r.GET("/metrics", metrics.Handler())
	}

	r.NoRoute(notFound)
	return r
}

func notFound(c *gin.Context) {
	path := c.Request.RequestURI
	if path == "" {
		path = c.Request.URL.RequestURI()
	}
	respond.Failure(c, http.StatusNotFound, "not found", gin.H{"path": path})
}

// Addr normalizes the listen address. An empty host binds all interfaces.
func Addr(host, port string) string {
	if port == "" {
		port = "8080"
	}
	if port[0] == ':' {
		port = port[1:]
	}
	return net.JoinHostPort(host, port)
}
