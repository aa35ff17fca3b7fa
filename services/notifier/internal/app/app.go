package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidgro/pkg/config"
	"vidgro/pkg/jwt"
	"vidgro/pkg/logger"
	"vidgro/pkg/middleware"
	"vidgro/pkg/queue"
	notifierHTTP "vidgro/services/notifier/internal/controller/http"
	"vidgro/services/notifier/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func Run(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize UseCase
	notificationUseCase := usecase.NewNotificationUseCase(redisClient, queueClient, log)

	// Initialize HTTP handlers
	notificationHandler := notifierHTTP.NewNotificationHandler(notificationUseCase, redisClient, log, jwtService)

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

	api := r.Group("/api/v1")
	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.DELETE("/notifications", notificationHandler.ClearNotifications)
	}
	// WebSocket endpoint - handles authentication internally via query parameter
	api.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	// Internal route - queue depth for monitoring
	api.GET("/notifications/queue-status", notificationHandler.QueueStatus)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Consume engine change events in a goroutine
	go func() {
		log.Info("Starting engine event consumer...")
		if err := queueClient.ConsumeEvents(notificationUseCase.HandleEvent); err != nil {
			log.Error("Error starting event consumer: %v", err)
		}
	}()

	// Start server in a goroutine
	go func() {
		log.Info("Notifier service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notifier service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Notifier service exited")
}
