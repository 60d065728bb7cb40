package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"course-platform/internal/config"
	"course-platform/internal/di"
	"course-platform/internal/server"
	"course-platform/internal/shared/accesslog"
	"course-platform/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	appLogger := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.IsProduction())
	appLogger.WithFields(map[string]interface{}{
		"environment": cfg.Environment,
	}).Info("Configuration loaded")

	accessLog, err := accesslog.NewZapLogger(cfg.IsProduction())
	if err != nil {
		appLogger.Errorf("Failed to build access logger: %v", err)
		return 1
	}
	defer func() { _ = accessLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container := di.NewContainer(cfg, appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	if err := container.Initialize(ctx); err != nil {
		appLogger.Errorf("Failed to initialize dependencies: %v", err)
		return 1
	}
	appLogger.Info("All modules initialized")

	app := server.New(cfg, appLogger, accessLog, container.HealthCheck, container.Mounts()...)

	ln, err := server.Listen(cfg.Addr())
	if err != nil {
		if errors.Is(err, server.ErrPortInUse) {
			appLogger.Errorf("Port %s is already in use. Please try a different port or kill the process using that port.", cfg.Server.Port)
		} else {
			appLogger.Errorf("Error starting server: %v", err)
		}
		return 1
	}
	appLogger.Infof("Server Started on PORT %s", cfg.Server.Port)

	if err := server.Run(ctx, app, ln, cfg.Server.ShutdownTimeout); err != nil {
		appLogger.Errorf("Server stopped with error: %v", err)
		return 1
	}

	appLogger.Info("Server closed. Exiting process.")
	return 0
}
