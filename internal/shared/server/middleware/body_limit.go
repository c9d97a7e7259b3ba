package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/shared/server/respond"
)

// MultipartOverhead is the allowance on top of the limit for multipart
// framing and text fields. The file part itself is capped by the upload
// handler.
const MultipartOverhead int64 = 1 << 20

// BodyLimit caps request bodies at limit bytes, or limit+MultipartOverhead for
// multipart forms. Declared lengths above the cap are refused up front;
// chunked bodies fail when the reader crosses it.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		ceiling := limit
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			ceiling += MultipartOverhead
		}
		if c.Request.ContentLength > ceiling {
			respond.TooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ceiling)
		c.Next()
	}
}
