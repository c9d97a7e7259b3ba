package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	UploadEndpointKey = "uploadEndpoint"
	StoredFileKey     = "storedFile"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"origin":      c.GetHeader("Origin"),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if endpoint := c.GetString(UploadEndpointKey); endpoint != "" {
			fields["upload_endpoint"] = endpoint
		}
		if stored := c.GetString(StoredFileKey); stored != "" {
			fields["stored_file"] = stored
		}
		telemetry.Info("request.complete", fields)
	}
}
