package usecase

import (
	"fmt"
	"io"
	"time"

	"vidgro/pkg/logger"
	"vidgro/pkg/queue"
	"vidgro/pkg/s3"
	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/repo/persistent"
)

type PromotionUseCase interface {
	CreatePromotion(ownerID, videoID, title string, durationSeconds, targetViews int) (*entity.Promotion, error)
	CancelPromotion(promotionID, ownerID string) (int, error)
	GetPromotion(promotionID string) (*entity.Promotion, error)
	ListPromotions(ownerID string, limit, offset int) ([]*entity.Promotion, error)
	UploadThumbnail(promotionID, ownerID string, file io.Reader, contentType string) (*entity.Promotion, error)
}

type promotionUseCase struct {
	accountRepo   persistent.AccountRepository
	promotionRepo persistent.PromotionRepository
	s3Client      *s3.Client
	queueClient   *queue.Client
	logger        *logger.Logger
}

func NewPromotionUseCase(
	accountRepo persistent.AccountRepository,
	promotionRepo persistent.PromotionRepository,
	s3Client *s3.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PromotionUseCase {
	return &promotionUseCase{
		accountRepo:   accountRepo,
		promotionRepo: promotionRepo,
		s3Client:      s3Client,
		queueClient:   queueClient,
		logger:        logger,
	}
}

// CreatePromotion charges the owner up front and enqueues the video with a
// pending hold. The cost is computed here, never taken from the client.
func (uc *promotionUseCase) CreatePromotion(ownerID, videoID, title string, durationSeconds, targetViews int) (*entity.Promotion, error) {
	if durationSeconds < entity.MinDurationSeconds || durationSeconds > entity.MaxDurationSeconds {
		return nil, fmt.Errorf("duration must be between %d and %d seconds",
			entity.MinDurationSeconds, entity.MaxDurationSeconds)
	}
	if targetViews < entity.MinTargetViews || targetViews > entity.MaxTargetViews {
		return nil, fmt.Errorf("target views must be between %d and %d",
			entity.MinTargetViews, entity.MaxTargetViews)
	}
	if videoID == "" || title == "" {
		return nil, fmt.Errorf("video id and title are required")
	}

	owner, err := uc.accountRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive {
		return nil, entity.ErrAccountNotFound
	}

	now := time.Now()
	_, _, total := entity.ComputePromotionCost(targetViews, durationSeconds, owner.VIPActive(now))

	promotion := &entity.Promotion{
		OwnerAccountID:    ownerID,
		VideoID:           videoID,
		Title:             title,
		DurationSeconds:   durationSeconds,
		CoinCost:          total,
		CoinRewardPerView: entity.RewardPerView(durationSeconds),
		TargetViews:       targetViews,
		Status:            entity.PromotionStatusPending,
		HoldExpiresAt:     now.Add(entity.HoldPeriod),
	}

	created, err := uc.promotionRepo.CreateWithCharge(promotion)
	if err != nil {
		return nil, err
	}

	uc.publishPromotionEvent(queue.EventPromotionCreated, created.OwnerAccountID, created.ID, map[string]interface{}{
		"title":     created.Title,
		"coin_cost": created.CoinCost,
	})

	return created, nil
}

func (uc *promotionUseCase) CancelPromotion(promotionID, ownerID string) (int, error) {
	refund, promotion, err := uc.promotionRepo.CancelWithRefund(promotionID, ownerID, time.Now())
	if err != nil {
		return 0, err
	}

	uc.publishPromotionEvent(queue.EventPromotionCancelled, ownerID, promotion.ID, map[string]interface{}{
		"title":  promotion.Title,
		"refund": refund,
	})

	return refund, nil
}

func (uc *promotionUseCase) GetPromotion(promotionID string) (*entity.Promotion, error) {
	return uc.promotionRepo.GetByID(promotionID)
}

func (uc *promotionUseCase) ListPromotions(ownerID string, limit, offset int) ([]*entity.Promotion, error) {
	return uc.promotionRepo.ListByOwner(ownerID, limit, offset)
}

func (uc *promotionUseCase) UploadThumbnail(promotionID, ownerID string, file io.Reader, contentType string) (*entity.Promotion, error) {
	promotion, err := uc.promotionRepo.GetByID(promotionID)
	if err != nil {
		return nil, err
	}
	if promotion.OwnerAccountID != ownerID {
		return nil, entity.ErrNotOwner
	}

	key := fmt.Sprintf("thumbnails/%s.jpg", promotionID)
	url, err := uc.s3Client.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload thumbnail: %v", err)
		return nil, fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	if err := uc.promotionRepo.SetThumbnailURL(promotionID, url); err != nil {
		return nil, err
	}

	promotion.ThumbnailURL = url
	return promotion, nil
}

func (uc *promotionUseCase) publishPromotionEvent(eventType, accountID, promotionID string, data map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		event := queue.Event{
			Type:        eventType,
			AccountID:   accountID,
			PromotionID: promotionID,
			Data:        data,
		}
		if err := uc.queueClient.PublishEvent(event); err != nil {
			uc.logger.Error("Failed to publish %s event: %v", eventType, err)
		}
	}()
}
