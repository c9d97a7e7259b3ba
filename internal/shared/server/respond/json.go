package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success is the envelope returned by successful upload endpoints.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 {success:true, message, data} response.
func OK(c *gin.Context, message string, data any) {
	JSON(c, http.StatusOK, Success{Success: true, Message: message, Data: data})
}
