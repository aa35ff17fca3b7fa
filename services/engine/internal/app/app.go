package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidgro/pkg/cache"
	"vidgro/pkg/config"
	"vidgro/pkg/database"
	"vidgro/pkg/jwt"
	"vidgro/pkg/logger"
	"vidgro/pkg/middleware"
	"vidgro/pkg/queue"
	"vidgro/pkg/s3"
	engineHTTP "vidgro/services/engine/internal/controller/http"
	"vidgro/services/engine/internal/repo/persistent"
	"vidgro/services/engine/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "vidgro/services/engine/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without rate limiting)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	accountRepo := persistent.NewAccountRepository(a.db)
	ledgerRepo := persistent.NewLedgerRepository(a.db)
	promotionRepo := persistent.NewPromotionRepository(a.db)
	viewRepo := persistent.NewViewRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(accountRepo, a.jwtService, a.queueClient, a.log)
	ledgerUseCase := usecase.NewLedgerUseCase(accountRepo, ledgerRepo, a.queueClient, a.log)
	promotionUseCase := usecase.NewPromotionUseCase(accountRepo, promotionRepo, a.s3Client, a.queueClient, a.log)
	viewUseCase := usecase.NewViewUseCase(promotionRepo, viewRepo, a.queueClient, a.log)

	// Initialize HTTP handlers
	authHandler := engineHTTP.NewAuthHandler(authUseCase, a.log)
	walletHandler := engineHTTP.NewWalletHandler(ledgerUseCase, a.log)
	promotionHandler := engineHTTP.NewPromotionHandler(promotionUseCase, a.log)
	videoHandler := engineHTTP.NewVideoHandler(viewUseCase, a.log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		protected.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute)) // 100 requests per minute
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/vip/activate", authHandler.ActivateVIP)
			protected.DELETE("/me", authHandler.CloseAccount)

			protected.GET("/wallet", walletHandler.GetWallet)
			protected.GET("/wallet/transactions", walletHandler.GetTransactions)

			protected.POST("/promotions", promotionHandler.CreatePromotion)
			protected.GET("/promotions", promotionHandler.ListPromotions)
			protected.GET("/promotions/:id", promotionHandler.GetPromotion)
			protected.DELETE("/promotions/:id", promotionHandler.CancelPromotion)
			protected.POST("/promotions/:id/thumbnail", promotionHandler.UploadThumbnail)

			protected.GET("/videos/next", videoHandler.NextVideo)
			protected.POST("/videos/:id/complete", videoHandler.CompleteView)
			protected.GET("/videos/history", videoHandler.ViewHistory)
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Engine service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down engine service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if a.queueClient != nil {
		a.queueClient.Close()
	}

	// Shutdown server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Engine service exited")
	return nil
}
