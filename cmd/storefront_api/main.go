package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	adminAPI "github.com/ovenside/bakery-admin/internal/admins/api"
	adminRepo "github.com/ovenside/bakery-admin/internal/admins/repository"
	adminService "github.com/ovenside/bakery-admin/internal/admins/service"
	catalogAPI "github.com/ovenside/bakery-admin/internal/catalog/api"
	catalogRepo "github.com/ovenside/bakery-admin/internal/catalog/repository"
	catalogService "github.com/ovenside/bakery-admin/internal/catalog/service"
	orderAPI "github.com/ovenside/bakery-admin/internal/orders/api"
	orderRepo "github.com/ovenside/bakery-admin/internal/orders/repository"
	orderService "github.com/ovenside/bakery-admin/internal/orders/service"
	"github.com/ovenside/bakery-admin/internal/platform/cache"
	"github.com/ovenside/bakery-admin/internal/platform/config"
	"github.com/ovenside/bakery-admin/internal/platform/database"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

func main() {
	cfg := config.LoadStorefrontConfig()

	logger.Info("Starting Storefront API...")

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Storefront API", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	// `storefront_api migrate` applies the schema and exits.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := applyMigrations(context.Background(), db, true); err != nil {
			logger.Error("Migration failed", err, nil)
			os.Exit(1)
		}
		return
	}
	if cfg.AutoMigrate {
		if err := applyMigrations(context.Background(), db, false); err != nil {
			logger.Error("Auto-migration failed", err, nil)
			os.Exit(1)
		}
	}

	productCache, err := cache.New(context.Background(), cfg.Redis, "storefront:")
	if err != nil {
		logger.Error("Failed to connect to redis, continuing without cache", err, nil)
		productCache = nil
	}
	if productCache != nil {
		defer productCache.Close()
		logger.Info("Product list cache enabled via " + cfg.Redis.Addr)
	}

	// Setup Dependencies
	prodRepository := catalogRepo.NewPostgresProductRepository(db)
	catService := catalogService.NewCatalogService(prodRepository, productCache)
	productHandler := catalogAPI.NewProductHandler(catService)

	admRepository := adminRepo.NewPostgresAdminRepository(db)
	admService := adminService.NewAdminService(admRepository)
	adminHandler := adminAPI.NewAdminHandler(admService)

	ordRepository := orderRepo.NewPostgresOrderRepository(db)
	ordService := orderService.NewOrderService(ordRepository)
	orderHandler := orderAPI.NewOrderHandler(ordService)

	reconcilerSpec := config.GetEnv("STATUS_RECONCILER_SPEC", "@hourly")
	reconciler, err := catalogService.NewStatusReconciler(catService, reconcilerSpec)
	if err != nil {
		logger.Error("Failed to configure status reconciler", err, nil)
		os.Exit(1)
	}
	reconciler.Start()
	defer reconciler.Stop()

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	// The console may be served from a different origin.
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Accept"},
	}))

	productHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	logger.Info("Storefront API running on port " + cfg.Server.Port)
	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Error("Failed to run Storefront API server", err, nil)
	}
}
