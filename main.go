package main

import (
	"fmt"
	"log"

	"github.com/Stevekk11/PersonalCloud/config"
	"github.com/Stevekk11/PersonalCloud/database"
	"github.com/Stevekk11/PersonalCloud/handlers"
	"github.com/Stevekk11/PersonalCloud/logger"
	"github.com/Stevekk11/PersonalCloud/middleware"
	"github.com/Stevekk11/PersonalCloud/models"
	"github.com/Stevekk11/PersonalCloud/repositories"
	"github.com/Stevekk11/PersonalCloud/services"
	"github.com/Stevekk11/PersonalCloud/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logger.Sync()

	if err := database.InitMySQL(&cfg.Database); err != nil {
		logger.L().Fatalw("init mysql failed", "error", err)
	}

	if err := database.DB.AutoMigrate(
		&models.Account{},
		&models.Document{},
	); err != nil {
		logger.L().Fatalw("database migration failed", "error", err)
	}
	logger.L().Infow("database migration completed")

	blobStore, err := storage.NewBlobStore(cfg.Storage.BasePath)
	if err != nil {
		logger.L().Fatalw("init blob store failed", "error", err)
	}

	repoContainer := repositories.NewGormRepositories(database.DB).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, blobStore)
	handlers.SetServices(serviceContainer)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	setupRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.L().Infow("server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.L().Fatalw("server start failed", "error", err)
	}
}

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/documents", handlers.ListDocuments)
		protected.POST("/documents/upload", handlers.UploadDocument)
		protected.GET("/documents/gallery", handlers.Gallery)
		protected.GET("/documents/music", handlers.Music)
		protected.GET("/documents/:id/download", handlers.DownloadDocument)
		protected.GET("/documents/:id/preview", handlers.PreviewDocument)
		protected.GET("/documents/:id/image-details", handlers.GetImageDetails)
		protected.PUT("/documents/:id/rename", handlers.RenameDocument)
		protected.PUT("/documents/:id/move", handlers.MoveDocument)
		protected.DELETE("/documents/:id", handlers.DeleteDocument)

		protected.GET("/folders", handlers.ListFolders)
		protected.GET("/user/storage/usage", handlers.GetStorageUsage)

		protected.GET("/premium/status", handlers.PremiumStatus)
		protected.POST("/premium/upgrade", handlers.UpgradeToPremium)
		protected.POST("/premium/downgrade", handlers.DowngradeFromPremium)
	}
}
