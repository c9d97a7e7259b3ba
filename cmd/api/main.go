package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamelog-gateway/internal/bootstrap"
	"gamelog-gateway/internal/shared/config"
	"gamelog-gateway/internal/shared/server"
	"gamelog-gateway/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	telemetry.SetCommonFields(map[string]any{"server": cfg.ServerName})

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Sweeper.Start(); err != nil {
		log.Fatalf("start retention: %v", err)
	}

	addr := server.Addr(cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	telemetry.Info("server.started", map[string]any{
		"addr":           addr,
		"data_dir":       cfg.DataDir,
		"object_store":   cfg.ObjectStoreType,
		"allowed_origin": cfg.CORSAllowOrigin,
		"started_at":     time.Now().UTC().Format(time.RFC3339),
	})

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	case <-ctx.Done():
		// In-flight requests are not drained.
		telemetry.Info("server.stopping", map[string]any{"reason": "signal"})
		app.Sweeper.Stop()
		_ = srv.Close()
	}
}
