package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy = "healthy"
	healthMessage = "server is running"
	isoMillis     = "2006-01-02T15:04:05.000Z"
)

// Status is the health payload.
type Status struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Server    string `json:"server"`
	Version   string `json:"version"`
}

// Service reports liveness. It has no dependencies and always reports healthy.
type Service struct {
	server  string
	version string
	now     func() time.Time
}

// NewService constructs a new health service.
func NewService(server, version string) *Service {
	return &Service{server: server, version: version, now: time.Now}
}

// Status returns the current health payload.
func (s *Service) Status() Status {
	return Status{
		Status:    statusHealthy,
		Message:   healthMessage,
		Timestamp: s.now().UTC().Format(isoMillis),
		Server:    s.server,
		Version:   s.version,
	}
}

// Handler serves the health payload.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Status())
	}
}
