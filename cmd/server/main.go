package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/scheduler"
	"github.com/mamadbah2/epd-dashboard/internal/server/handlers"
	"github.com/mamadbah2/epd-dashboard/internal/server/router"
	"github.com/mamadbah2/epd-dashboard/internal/server/views"
	"github.com/mamadbah2/epd-dashboard/internal/service/resources"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
	"github.com/mamadbah2/epd-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	apiClient := epdapi.NewClient(cfg.API, logger.Named(baseLogger, "client.epdapi"))
	svc := resources.NewSet(apiClient)

	renderer, err := views.New()
	if err != nil {
		baseLogger.Fatal("failed to parse views", zap.Error(err))
	}

	// Initialize Scheduler
	sched := scheduler.NewScheduler(cfg.Probe, svc.Auth, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(svc.Auth, cfg.Session, logger.Named(baseLogger, "handlers.auth")),
		Processes: handlers.NewProcessHandler(svc, cfg.Session, logger.Named(baseLogger, "handlers.processes")),
		Products:  handlers.NewProductHandler(svc, cfg.Session, logger.Named(baseLogger, "handlers.products")),
		Health:    handlers.NewHealthHandler(sched),
	}, router.Options{
		Identity:  svc.Auth,
		LoginPath: cfg.Session.LoginPath,
		Renderer:  renderer,
	}, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.API.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("api", cfg.API.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
