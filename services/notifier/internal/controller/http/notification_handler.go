package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"vidgro/pkg/jwt"
	"vidgro/pkg/logger"
	"vidgro/services/notifier/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	redisClient         *redis.Client
	logger              *logger.Logger
	jwtService          *jwt.Service
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, redisClient *redis.Client, logger *logger.Logger, jwtService *jwt.Service) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		redisClient:         redisClient,
		logger:              logger,
		jwtService:          jwtService,
	}
}

// GetNotifications godoc
// @Summary      Notification feed
// @Description  Most recent notifications for the authenticated account, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of notifications"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	accountID := c.GetString("user_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	notifications, total, err := h.notificationUseCase.GetNotifications(accountID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"total":         total,
	})
}

// ClearNotifications godoc
// @Summary      Clear notification feed
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	accountID := c.GetString("user_id")
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationUseCase.ClearNotifications(accountID); err != nil {
		h.logger.Error("Failed to clear notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}

func (h *NotificationHandler) QueueStatus(c *gin.Context) {
	depth, err := h.notificationUseCase.QueueDepth()
	if err != nil {
		h.logger.Error("Failed to get queue depth: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get queue depth"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queue_length": depth})
}

// HandleWebSocket streams notifications for the account live. The browser
// WebSocket API cannot set an Authorization header, so the token rides in a
// query parameter instead.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	accountID := c.GetString("user_id")

	if accountID == "" {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		accountID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for account %s", accountID)

	ctx := context.Background()
	pubsub := h.redisClient.Subscribe(ctx, fmt.Sprintf("notifications:%s", accountID))
	defer pubsub.Close()

	redisChannel := pubsub.Channel()
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case msg := <-redisChannel:
				if msg == nil {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					h.logger.Error("Failed to write WebSocket message: %v", err)
					return
				}
			}
		}
	}()

	for {
		messageType, _, err := conn.ReadMessage()
		if err != nil {
			h.logger.Warn("WebSocket read error: %v", err)
			break
		}
		if messageType == websocket.CloseMessage {
			break
		}
		if messageType == websocket.PingMessage {
			conn.WriteMessage(websocket.PongMessage, nil)
		}
	}

	close(done)
	h.logger.Info("WebSocket disconnected for account %s", accountID)
}
