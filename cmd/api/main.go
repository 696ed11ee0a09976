package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/celebration/internal/config"
	"github.com/joshua-takyi/celebration/internal/connect"
	"github.com/joshua-takyi/celebration/internal/container"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/routes"
	"github.com/joshua-takyi/celebration/internal/storage"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting celebration API server", "environment", cfg.Environment, "store", cfg.StoreDriver, "storage", cfg.StorageBackend)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	stores, err := openStores(ctx, cfg, logger)
	if err != nil {
		cancel()
		logger.Error("Failed to open data store", "error", err)
		os.Exit(1)
	}

	st, err := openStorage(ctx, cfg)
	if err != nil {
		cancel()
		logger.Error("Failed to initialize file storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}

	appContainer, err := container.NewContainer(cfg, logger, stores, st)
	if err != nil {
		cancel()
		logger.Error("Failed to build container", "error", err)
		os.Exit(1)
	}

	if cfg.SeedAdmin() {
		created, err := appContainer.AuthService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			cancel()
			logger.Error("Failed to seed admin user", "error", err)
			os.Exit(1)
		}
		if created {
			logger.Info("Seeded admin user", "username", cfg.AdminUsername, "email", cfg.AdminEmail)
		}
	}
	cancel()

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*container.Stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return container.MemoryStores(), nil
	}

	client, err := connect.MongoDBConnect(cfg.MongoDBURI, cfg.MongoDBPassword)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)

	mdb := models.MongodbNewRepo(client, cfg.MongoDBDatabase)
	if err := mdb.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return container.MongoStores(mdb)
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageLocal:
		local, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPrefix)
		if err != nil {
			return nil, err
		}
		return local, nil
	case config.StorageS3:
		client, err := connect.MinioConnect(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Storage(client, cfg.S3Bucket, cfg.S3PublicURL), nil
	case config.StorageCloudinary:
		cld, err := connect.CloudinaryCredentials(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, err
		}
		return storage.NewCloudinaryStorage(cld, cfg.CloudinaryFolder), nil
	case config.StorageSupabase:
		client, err := connect.InitSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, err
		}
		return storage.NewSupabaseStorage(client, cfg.SupabaseURL, cfg.SupabaseBucket), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
