package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storecraft/admin-api/config"
	"github.com/storecraft/admin-api/controllers"
	"github.com/storecraft/admin-api/logger"
	"github.com/storecraft/admin-api/middleware"
	"github.com/storecraft/admin-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Init(cfg.GoEnv)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase(db)

	gateway := services.NewPaymentGateway(cfg.PaymentAPIURL, cfg.PaymentSecretKey, cfg.PaymentWebhookSecret)

	var cache *services.CatalogCache
	if cfg.RedisURL != "" {
		cache, err = services.NewCatalogCache(cfg.RedisURL, 5*time.Minute)
		if err != nil {
			logger.L().Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer cache.Close()
	}

	var images services.ImageService
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.NewS3Service(cfg)
		if err != nil {
			logger.L().Fatal("Failed to initialize S3", zap.Error(err))
		}
		images = services.NewImageService(s3Service)
	}

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := services.NewOrderCleanupService(db, cfg.OrderExpiry)
	go sweeper.Run(sweeperCtx, time.Hour)

	router := setupRouter(cfg, db, gateway, cache, images)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.L().Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("Forced shutdown", zap.Error(err))
	}
}

func setupRouter(cfg *config.Config, db *gorm.DB, gateway services.PaymentGateway, cache *services.CatalogCache, images services.ImageService) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger.L()))
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	requireAuth := middleware.RequireAuth(cfg)
	checkoutLimiter := middleware.NewRateLimiter(middleware.CheckoutLimit, middleware.CheckoutBurst)

	storeController := controllers.NewStoreController(db)
	billboardController := controllers.NewBillboardController(db)
	categoryController := controllers.NewCategoryController(db)
	sizeController := controllers.NewSizeController(db)
	colorController := controllers.NewColorController(db)
	productController := controllers.NewProductController(db, cache)
	checkoutController := controllers.NewCheckoutController(db, gateway)
	webhookController := controllers.NewWebhookController(db, gateway)
	analyticsController := controllers.NewAnalyticsController(db)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)
		api.POST("/webhook", webhookController.Handle)

		stores := api.Group("/stores", requireAuth)
		{
			stores.POST("", storeController.Create)
			stores.GET("", storeController.List)
			stores.PATCH("/:storeId", storeController.Update)
			stores.DELETE("/:storeId", storeController.Delete)
		}

		store := api.Group("/:storeId")
		{
			store.GET("/billboards", billboardController.List)
			store.GET("/billboards/:billboardId", billboardController.Get)
			store.POST("/billboards", requireAuth, billboardController.Create)
			store.PATCH("/billboards/:billboardId", requireAuth, billboardController.Update)
			store.DELETE("/billboards/:billboardId", requireAuth, billboardController.Delete)

			store.GET("/categories", categoryController.List)
			store.GET("/categories/:categoryId", categoryController.Get)
			store.POST("/categories", requireAuth, categoryController.Create)
			store.PATCH("/categories/:categoryId", requireAuth, categoryController.Update)
			store.DELETE("/categories/:categoryId", requireAuth, categoryController.Delete)

			store.GET("/sizes", sizeController.List)
			store.GET("/sizes/:sizeId", sizeController.Get)
			store.POST("/sizes", requireAuth, sizeController.Create)
			store.PATCH("/sizes/:sizeId", requireAuth, sizeController.Update)
			store.DELETE("/sizes/:sizeId", requireAuth, sizeController.Delete)

			store.GET("/colors", colorController.List)
			store.GET("/colors/:colorId", colorController.Get)
			store.POST("/colors", requireAuth, colorController.Create)
			store.PATCH("/colors/:colorId", requireAuth, colorController.Update)
			store.DELETE("/colors/:colorId", requireAuth, colorController.Delete)

			store.GET("/products", productController.List)
			store.GET("/products/:productId", productController.Get)
			store.POST("/products", requireAuth, productController.Create)
			store.PATCH("/products/:productId", requireAuth, productController.Update)
			store.DELETE("/products/:productId", requireAuth, productController.Delete)

			store.POST("/checkout", checkoutLimiter.Middleware(), checkoutController.Create)

			analytics := store.Group("/analytics", requireAuth)
			{
				analytics.GET("/revenue", analyticsController.TotalRevenue)
				analytics.GET("/revenue/graph", analyticsController.GraphRevenue)
				analytics.GET("/sales-count", analyticsController.SalesCount)
				analytics.GET("/stock-count", analyticsController.StockCount)
			}

			if images != nil {
				uploadController := controllers.NewUploadController(db, images)
				store.POST("/uploads", requireAuth, uploadController.Upload)
			}
		}
	}

	return router
}

// healthCheck provides a simple health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":  "healthy",
			"service": "storecraft-admin-api",
		},
	})
}
