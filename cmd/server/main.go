package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rvidal/doorway/internal/api"
	"github.com/rvidal/doorway/internal/config"
	"github.com/rvidal/doorway/internal/logger"
	"github.com/rvidal/doorway/internal/repository/postgres"
	"github.com/rvidal/doorway/internal/service"
	"github.com/rvidal/doorway/internal/token"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present, otherwise rely on the real environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize token codec
	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		lg.Fatal("failed to init token codec", zap.Error(err))
	}

	// Initialize services
	services := service.NewServices(repos, codec)

	// Initialize router
	router := api.NewRouter(services, codec, cfg, lg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		lg.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Fatal("server forced to shutdown", zap.Error(err))
	}

	lg.Info("server stopped")
}
