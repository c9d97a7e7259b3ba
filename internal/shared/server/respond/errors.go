package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/shared/telemetry"
)

// Failure sends {success:false, error:<message>} plus any extra fields and
// aborts the chain.
func Failure(c *gin.Context, status int, message string, extra gin.H) {
	fields := map[string]any{
		"status":     status,
		"error":      message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	body := gin.H{
		"success": false,
		"error":   message,
	}
	for k, v := range extra {
		if k == "success" || k == "error" {
			continue
		}
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

// InternalErrorMessage is the error text of the catch-all 500 response.
const InternalErrorMessage = "internal server error"

// TooLarge reports a body that crossed the configured ceiling. The shape
// matches the catch-all error response.
func TooLarge(c *gin.Context) {
	Failure(c, http.StatusInternalServerError, InternalErrorMessage, gin.H{
		"message": "request body too large",
	})
}
