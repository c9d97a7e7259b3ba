package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"gamelog-gateway/internal/retention"
	"gamelog-gateway/internal/services/health"
	"gamelog-gateway/internal/shared/config"
	"gamelog-gateway/internal/shared/server"
	"gamelog-gateway/internal/shared/server/middleware"
	"gamelog-gateway/internal/shared/storage/object"
	localstore "gamelog-gateway/internal/shared/storage/object/local"
	s3store "gamelog-gateway/internal/shared/storage/object/s3"
	"gamelog-gateway/internal/shared/telemetry"
	"gamelog-gateway/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Store         object.ObjectStore
	Health        *health.Service
	UploadService *uploads.Service
	UploadHandler *uploads.Handler
	Sweeper       *retention.Sweeper
}

// Build prepares the dependency graph and the router. It does not start
// background work; call Sweeper.Start for that.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if cfg.Env != "dev" && cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sweeper, err := retention.New(store, cfg.RetentionMaxAge, cfg.RetentionSchedule)
	if err != nil {
		return nil, err
	}

	uploadSvc := uploads.NewService(store, uploads.NewNamer(nil, nil))
	uploadSvc.MaxFileBytes = cfg.MaxUploadBytes
	app := &App{
		Config:        cfg,
		Store:         store,
		Health:        health.NewService(cfg.ServerName, cfg.ServerVersion),
		UploadService: uploadSvc,
		UploadHandler: uploads.NewHandler(uploadSvc),
		Sweeper:       sweeper,
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimitRule{
			Rate:  cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		}, nil)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		Health:        app.Health,
		UploadHandler: app.UploadHandler,
		RateLimiter:   limiter,
	})

	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		if strings.TrimSpace(cfg.DataDir) == "" {
			return nil, fmt.Errorf("DATA_DIR is required")
		}
		store := localstore.New(cfg.DataDir)
		created, err := store.Ensure()
		if err != nil {
			return nil, fmt.Errorf("prepare data dir: %w", err)
		}
		if created {
			telemetry.Info("storage.dir.created", map[string]any{"dir": cfg.DataDir})
		}
		return store, nil
	}
}
