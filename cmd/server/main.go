package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"character-forge/backend/internal/models"
	"character-forge/backend/pkg/config"
	"character-forge/backend/pkg/di"
	"character-forge/backend/pkg/logger"
	"character-forge/backend/pkg/observability"
	"character-forge/backend/pkg/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		JSON:  cfg.Logging.Format == "json",
	})
	logger.SetGlobal(log)

	log.Info("Starting application", "env", cfg.Server.Env)

	db, err := config.NewDB(cfg)
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Character{}, &models.CharacterTemplate{}); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_templates_category_active ON character_templates(category, is_active)").Error; err != nil {
		log.LogError(err, "Failed to create template index", "index", "idx_templates_category_active")
	}

	container := di.New(db, cfg)
	container.Health.Start()

	shutdownTracing := observability.SetupTracing("character-forge", log)
	defer shutdownTracing()
	observability.SetupMetrics(cfg.Observability.MetricsPort, log)

	r := router.New(container)
	r.AttachMetrics()
	r.AddOpenAPIValidation(cfg.Observability.SchemaPath)
	r.SetupRoutes()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
