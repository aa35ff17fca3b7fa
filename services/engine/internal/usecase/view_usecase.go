package usecase

import (
	"fmt"
	"time"

	"vidgro/pkg/logger"
	"vidgro/pkg/queue"
	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/repo/persistent"
)

type ViewUseCase interface {
	// NextVideo returns nil without an error when no promotion is
	// watchable for the viewer; callers treat that as an empty queue.
	NextVideo(viewerID string) (*entity.Promotion, error)
	CompleteView(viewerID, promotionID string, watchedSeconds int) (*entity.Settlement, error)
	GetViewHistory(viewerID string, limit, offset int) ([]*entity.ViewRecord, error)
}

type viewUseCase struct {
	promotionRepo persistent.PromotionRepository
	viewRepo      persistent.ViewRepository
	queueClient   *queue.Client
	logger        *logger.Logger
}

func NewViewUseCase(
	promotionRepo persistent.PromotionRepository,
	viewRepo persistent.ViewRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) ViewUseCase {
	return &viewUseCase{
		promotionRepo: promotionRepo,
		viewRepo:      viewRepo,
		queueClient:   queueClient,
		logger:        logger,
	}
}

func (uc *viewUseCase) NextVideo(viewerID string) (*entity.Promotion, error) {
	promotion, err := uc.promotionRepo.NextForViewer(viewerID, time.Now())
	if err != nil {
		uc.logger.Error("Failed to select next video: %v", err)
		return nil, fmt.Errorf("failed to select next video: %w", err)
	}
	return promotion, nil
}

func (uc *viewUseCase) CompleteView(viewerID, promotionID string, watchedSeconds int) (*entity.Settlement, error) {
	if watchedSeconds < 0 {
		return nil, fmt.Errorf("watched duration cannot be negative")
	}

	settlement, promotion, err := uc.viewRepo.Settle(viewerID, promotionID, watchedSeconds, time.Now())
	if err != nil {
		return nil, err
	}

	uc.publishEvent(queue.Event{
		Type:        queue.EventViewSettled,
		AccountID:   viewerID,
		PromotionID: promotionID,
		Data: map[string]interface{}{
			"completed":    settlement.Completed,
			"coins_earned": settlement.CoinsEarned,
		},
	})

	if settlement.PromotionCompleted {
		uc.publishEvent(queue.Event{
			Type:        queue.EventPromotionCompleted,
			AccountID:   promotion.OwnerAccountID,
			PromotionID: promotion.ID,
			Data: map[string]interface{}{
				"title":        promotion.Title,
				"target_views": promotion.TargetViews,
			},
		})
	}

	return settlement, nil
}

func (uc *viewUseCase) GetViewHistory(viewerID string, limit, offset int) ([]*entity.ViewRecord, error) {
	return uc.viewRepo.ListByViewer(viewerID, limit, offset)
}

func (uc *viewUseCase) publishEvent(event queue.Event) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		if err := uc.queueClient.PublishEvent(event); err != nil {
			uc.logger.Error("Failed to publish %s event: %v", event.Type, err)
		}
	}()
}
