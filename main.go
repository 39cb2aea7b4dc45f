package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ihza6661/computer-store-rest-api-sub000/controllers"
	"github.com/ihza6661/computer-store-rest-api-sub000/database"
	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/pkg/logger"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
	"github.com/ihza6661/computer-store-rest-api-sub000/routes"
	"github.com/ihza6661/computer-store-rest-api-sub000/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg := LoadConfig()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// --- 1. Initialization ---

	db, err := database.ConnectPostgres(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ContactSubmission{},
		&models.AdminUser{},
	)
	if err != nil {
		zap.L().Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	rdb, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Image hosting is optional; without it products import with no images.
	assets, err := services.NewCloudinaryHost(cfg.CloudinaryFolder)
	if err != nil {
		zap.L().Warn("Image hosting disabled", zap.Error(err))
	}
	var assetHost services.AssetHost
	if assets != nil {
		assetHost = assets
	}

	// --- 2. Dependency Injection ---

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	imageRepo := repository.NewImageRepository(db)
	contactRepo := repository.NewContactRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	jobStore := services.NewRedisJobStore(rdb)
	importQueue := services.NewRedisImportQueue(rdb)

	imageService := services.NewImageService(imageRepo, productRepo, assetHost)
	productService := services.NewProductService(productRepo, categoryRepo, imageService, assetHost)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	importService := services.NewImportService(productRepo, categoryRepo, jobStore, importQueue)
	contactService := services.NewContactService(contactRepo)
	adminService := services.NewAdminService(adminRepo)

	validator := controllers.NewRequestValidator()
	productHandler := controllers.NewProductHandler(productService, validator)
	categoryHandler := controllers.NewCategoryHandler(categoryService, validator)
	imageHandler := controllers.NewImageHandler(imageService, productService, assetHost, validator)
	importHandler := controllers.NewImportHandler(importService, validator, cfg.UploadDir)
	contactHandler := controllers.NewContactHandler(contactService, validator)
	adminHandler := controllers.NewAdminHandler(adminService, validator)

	// --- 3. Background worker ---

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	services.StartImportWorker(workerCtx, rdb, importService)

	// --- 4. HTTP Server & Middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, productHandler, categoryHandler, imageHandler, importHandler, contactHandler, adminHandler)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down catalog service...")

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Catalog service stopped gracefully")
}
