package app

import (
	"context"
	"log"

	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/repository"
	"blogapi/internal/service"
	"blogapi/internal/storage"
)

// App wires the application graph. It terminates the process on any
// dependency that cannot come up, except Redis which degrades to
// cacheless operation.
func App(cfg *config.Config) (*database.DB, *cache.Cache, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	c := cache.New(cfg.Redis)
	if err := c.Ping(context.Background()); err != nil {
		log.Printf("warning: redis unavailable, running without cache: %v", err)
		c.Close()
		c = nil
	}

	repo := repository.NewRepository(db.DB)

	services, err := service.NewService(repo, cfg, c, minioClient)
	if err != nil {
		log.Fatalf("failed to build services: %v", err)
	}

	return db, c, services
}
