package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/shared/metrics"
	"gamelog-gateway/internal/shared/server/middleware"
	"gamelog-gateway/internal/shared/server/respond"
	"gamelog-gateway/internal/shared/telemetry"
)

// Handler serves every configured upload endpoint from one Service.
type Handler struct {
	Svc       *Service
	Endpoints []Endpoint
}

// NewHandler constructs a Handler. With no endpoints it serves the defaults.
func NewHandler(svc *Service, endpoints ...Endpoint) *Handler {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints()
	}
	return &Handler{Svc: svc, Endpoints: endpoints}
}

// RegisterRoutes attaches one POST route per endpoint.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	for _, ep := range h.Endpoints {
		rg.POST(ep.Path, h.upload(ep))
	}
}

func (h *Handler) upload(ep Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UploadEndpointKey, ep.Name)
		reqID := middleware.RequestIDFromContext(c)

		fileHeader, err := c.FormFile(ep.FileField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				metrics.IncUploadFailed(ep.Name, "too_large")
				respond.TooLarge(c)
				return
			}
			metrics.IncUploadFailed(ep.Name, "missing_file")
			respond.Failure(c, http.StatusBadRequest, ErrMissingFile.Error(), nil)
			return
		}

		telemetry.Info("upload.received", map[string]any{
			"request_id":    reqID,
			"endpoint":      ep.Name,
			"original_name": fileHeader.Filename,
			"size":          fileHeader.Size,
			"origin":        c.GetHeader("Origin"),
		})

		file, err := fileHeader.Open()
		if err != nil {
			metrics.IncUploadFailed(ep.Name, "read_error")
			respond.Failure(c, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		defer file.Close()

		values := make(map[string]string, len(ep.Fields)+1)
		values[string(FieldUserName)] = c.PostForm(string(FieldUserName))
		for _, f := range ep.Fields {
			values[string(f)] = c.PostForm(string(f))
		}

		meta, err := h.Svc.Save(c.Request.Context(), Upload{
			OriginalName: fileHeader.Filename,
			Size:         fileHeader.Size,
			Body:         file,
			Values:       values,
		}, ep.Fields)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingFile):
				metrics.IncUploadFailed(ep.Name, "missing_file")
				respond.Failure(c, http.StatusBadRequest, ErrMissingFile.Error(), nil)
			case errors.Is(err, ErrFileTooLarge):
				metrics.IncUploadFailed(ep.Name, "too_large")
				respond.TooLarge(c)
			default:
				metrics.IncUploadFailed(ep.Name, "write_failure")
				telemetry.Error("upload.failed", map[string]any{
					"request_id": reqID,
					"endpoint":   ep.Name,
					"err":        err,
				})
				respond.Failure(c, http.StatusInternalServerError, err.Error(), nil)
			}
			return
		}

		c.Set(middleware.StoredFileKey, meta.Filename)
		metrics.IncUploadReceived(ep.Name)
		metrics.ObserveUploadBytes(meta.Size)
		telemetry.Info("upload.stored", map[string]any{
			"request_id": reqID,
			"endpoint":   ep.Name,
			"filename":   meta.Filename,
			"size":       meta.Size,
			"user_name":  meta.UserName,
		})

		respond.OK(c, ep.SuccessMessage, meta)
	}
}
