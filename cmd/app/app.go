package app

import (
	"log"

	"famfeed/internal/config"
	"famfeed/internal/database"
	"famfeed/internal/identity"
	"famfeed/internal/repository"
	"famfeed/internal/service"
	"famfeed/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, identity.Provider, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	provider := newProvider(cfg, db)

	repo := repository.NewRepository(db.DB, cfg.OwnerOpenID)

	services := service.NewService(repo, provider, minioClient, cfg)

	return db, repo, provider, services
}

func newProvider(cfg *config.Config, db *database.DB) identity.Provider {
	switch cfg.Identity.Mode {
	case "gotrue":
		if cfg.Identity.GoTrueURL == "" {
			log.Fatal("GOTRUE_URL is required when IDENTITY_PROVIDER=gotrue")
		}
		return identity.NewGoTrueProvider(cfg.Identity.GoTrueURL, cfg.Identity.GoTrueKey)
	default:
		if cfg.Identity.JWTSecret == "" {
			log.Fatal("JWT_SECRET_KEY is required when IDENTITY_PROVIDER=local")
		}
		return identity.NewLocalProvider(db.DB, cfg.Identity.JWTSecret, cfg.Identity.SessionTTL)
	}
}
