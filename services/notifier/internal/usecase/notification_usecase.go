package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidgro/pkg/logger"
	"vidgro/pkg/queue"
	"vidgro/services/notifier/internal/entity"

	"github.com/redis/go-redis/v9"
)

// Feeds are capped per account and expire after a month of inactivity.
const (
	feedMaxLength = 100
	feedTTL       = 30 * 24 * time.Hour
)

type NotificationUseCase interface {
	HandleEvent(event queue.Event) error
	GetNotifications(accountID string, limit, offset int) ([]entity.Notification, int64, error)
	ClearNotifications(accountID string) error
	QueueDepth() (int, error)
}

type notificationUseCase struct {
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewNotificationUseCase(redisClient *redis.Client, queueClient *queue.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

// HandleEvent turns an engine change event into a feed entry. Events the
// notifier does not recognize are acked and dropped rather than requeued,
// otherwise a single bad message would wedge the queue.
func (uc *notificationUseCase) HandleEvent(event queue.Event) error {
	if event.AccountID == "" {
		uc.logger.Warn("Dropping event without account_id: type=%s", event.Type)
		return nil
	}

	notification := &entity.Notification{
		AccountID: event.AccountID,
		Type:      event.Type,
		Data:      event.Data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if event.PromotionID != "" {
		if notification.Data == nil {
			notification.Data = map[string]interface{}{}
		}
		notification.Data["promotion_id"] = event.PromotionID
	}

	switch event.Type {
	case queue.EventTransactionCreated:
		notification.Title = "Coins update"
		notification.Message = transactionMessage(event.Data)
	case queue.EventPromotionCreated:
		notification.Title = "Promotion started"
		notification.Message = fmt.Sprintf("Your video %q is now queued for views", stringField(event.Data, "title"))
	case queue.EventPromotionCancelled:
		notification.Title = "Promotion cancelled"
		notification.Message = fmt.Sprintf("Your promotion %q was cancelled; %v coins refunded",
			stringField(event.Data, "title"), event.Data["refund"])
	case queue.EventPromotionCompleted:
		notification.Title = "Promotion completed"
		notification.Message = fmt.Sprintf("Your video %q reached its target views", stringField(event.Data, "title"))
	case queue.EventViewSettled:
		notification.Title = "View recorded"
		notification.Message = viewMessage(event.Data)
	default:
		uc.logger.Warn("Unknown event type %q, dropping", event.Type)
		return nil
	}

	if err := uc.pushToFeed(notification); err != nil {
		uc.logger.Error("Failed to store notification for account %s: %v", event.AccountID, err)
		return err
	}

	return nil
}

func transactionMessage(data map[string]interface{}) string {
	amount, _ := data["amount"].(float64)
	if amount >= 0 {
		return fmt.Sprintf("You received %d coins", int(amount))
	}
	return fmt.Sprintf("You spent %d coins", int(-amount))
}

func viewMessage(data map[string]interface{}) string {
	if completed, _ := data["completed"].(bool); !completed {
		return "A watch session ended below the completion threshold"
	}
	coins, _ := data["coins_earned"].(float64)
	return fmt.Sprintf("You earned %d coins for watching a video", int(coins))
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func (uc *notificationUseCase) GetNotifications(accountID string, limit, offset int) ([]entity.Notification, int64, error) {
	ctx := context.Background()
	feedKey := fmt.Sprintf("notifications:%s", accountID)

	entries, err := uc.redisClient.LRange(ctx, feedKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	var notifications []entity.Notification
	for _, entryJSON := range entries {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(entryJSON), &notification); err == nil {
			notifications = append(notifications, notification)
		}
	}

	totalCount, _ := uc.redisClient.LLen(ctx, feedKey).Result()

	return notifications, totalCount, nil
}

func (uc *notificationUseCase) ClearNotifications(accountID string) error {
	ctx := context.Background()
	feedKey := fmt.Sprintf("notifications:%s", accountID)

	if err := uc.redisClient.Del(ctx, feedKey).Err(); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}

func (uc *notificationUseCase) QueueDepth() (int, error) {
	if uc.queueClient == nil {
		return 0, fmt.Errorf("queue client is not available")
	}
	return uc.queueClient.QueueLength()
}

func (uc *notificationUseCase) pushToFeed(notification *entity.Notification) error {
	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	feedKey := fmt.Sprintf("notifications:%s", notification.AccountID)
	if err := uc.redisClient.LPush(ctx, feedKey, notificationJSON).Err(); err != nil {
		return fmt.Errorf("failed to push notification to Redis: %w", err)
	}
	uc.redisClient.LTrim(ctx, feedKey, 0, feedMaxLength-1)
	uc.redisClient.Expire(ctx, feedKey, feedTTL)

	// Live subscribers get the same payload over pub/sub.
	if err := uc.redisClient.Publish(ctx, feedKey, notificationJSON).Err(); err != nil {
		uc.logger.Warn("Failed to publish notification to channel %s: %v", feedKey, err)
	}

	return nil
}
