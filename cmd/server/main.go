package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giovanaluizapereira/planner-2026/internal"
	"github.com/giovanaluizapereira/planner-2026/internal/api"
	"github.com/giovanaluizapereira/planner-2026/internal/auth"
	"github.com/giovanaluizapereira/planner-2026/internal/config"
	"github.com/giovanaluizapereira/planner-2026/internal/service"
	"github.com/giovanaluizapereira/planner-2026/internal/storage"
	"github.com/giovanaluizapereira/planner-2026/internal/vision"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	repo, err := storage.NewRunRepository(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer repo.Close()

	saver := service.NewSaver(repo, logger, cfg.SaveDebounce)
	defer saver.Close()
	runs := service.NewManager(repo, saver, logger)

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalProvider(cfg.LocalAuthToken, logger)
	} else {
		provider = auth.NewRemoteProvider(cfg.AuthServiceURL, logger)
	}

	var visionClient *vision.Client
	if cfg.VisionEnabled() {
		visionClient = vision.NewClient(cfg.VisionAPIURL, cfg.VisionAPIKey, cfg.VisionModel, logger)
	} else {
		logger.Warn("VISION_API_KEY not set; image analysis disabled")
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	app := api.NewApp(logger, runs, provider, visionClient)
	api.RegisterRoutes(r, app)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		logger.Infof("server running on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
