package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/shared/server/respond"
	"gamelog-gateway/internal/shared/telemetry"
)

// Recovery converts panics into a 500 {success:false} response so a single
// failing request never takes the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("panic", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				})
				if c.Writer.Written() {
					c.Abort()
					return
				}
				respond.Failure(c, http.StatusInternalServerError, respond.InternalErrorMessage, gin.H{
					"message": fmt.Sprint(rec),
				})
			}
		}()
		c.Next()
	}
}
