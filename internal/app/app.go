package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/O-Gamal/FIlePlace/internal/config"
	"github.com/O-Gamal/FIlePlace/internal/db"
	"github.com/O-Gamal/FIlePlace/internal/repository"
	"github.com/O-Gamal/FIlePlace/internal/service"
	"github.com/O-Gamal/FIlePlace/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	IdentityService *service.IdentityService
	FileService     *service.FileService
	UploadService   *service.UploadService
	ListingService  *service.ListingService
	FavoriteService *service.MarkService
	TrashService    *service.MarkService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)
	favoriteRepository := repository.NewFavoriteRepository(database)
	trashRepository := repository.NewTrashRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	identityService := service.NewIdentityService(userRepository)
	fileService := service.NewFileService(fileRepository, fileStorage)
	uploadService := service.NewUploadService(fileStorage, fileService)
	listingService := service.NewListingService(fileRepository, favoriteRepository, trashRepository, fileStorage)
	favoriteService := service.NewMarkService(favoriteRepository, fileRepository)
	trashService := service.NewMarkService(trashRepository, fileRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		IdentityService: identityService,
		FileService:     fileService,
		UploadService:   uploadService,
		ListingService:  listingService,
		FavoriteService: favoriteService,
		TrashService:    trashService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
