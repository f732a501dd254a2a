package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/apm-api/internal/auth"
	"github.com/yukikurage/apm-api/internal/config"
	"github.com/yukikurage/apm-api/internal/database"
	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/repository"
	"github.com/yukikurage/apm-api/internal/server"
	"github.com/yukikurage/apm-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, logger.Gorm(log))
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	blobs, err := openBlobStore(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open file storage")
	}

	r, err := server.NewRouter(server.Deps{
		Config: cfg,
		Store:  repository.NewStore(db),
		Blobs:  blobs,
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Log:    log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to build router")
	}

	// Start server
	log.WithField("port", cfg.Port).Info("Server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageBackend {
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	default:
		return storage.NewLocalStore(cfg.UploadDir)
	}
}
