package persistent

import (
	"errors"
	"fmt"
	"time"

	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewRepository interface {
	Settle(viewerID, promotionID string, watchedSeconds int, now time.Time) (*entity.Settlement, *entity.Promotion, error)
	ListByViewer(viewerID string, limit, offset int) ([]*entity.ViewRecord, error)
}

type viewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

// settlementStep is the state transition computed for one watch session
// against a locked promotion row.
type settlementStep struct {
	activate           bool
	completed          bool
	coinsEarned        int
	viewsCount         int
	promotionCompleted bool
}

// planSettlement applies the eligibility rules and decides what a watch
// session changes. A prior view record takes precedence over every other
// rejection: a retried settlement must report ErrAlreadyViewed even when the
// first attempt has since completed the promotion or someone cancelled it,
// never the state the first attempt left behind.
func planSettlement(row *model.PromotionModel, viewerID string, watchedSeconds int, hasPriorView bool, now time.Time) (settlementStep, error) {
	if row.OwnerAccountID == viewerID {
		return settlementStep{}, entity.ErrSelfView
	}
	if hasPriorView {
		return settlementStep{}, entity.ErrAlreadyViewed
	}

	status := entity.PromotionStatus(row.Status)
	step := settlementStep{viewsCount: row.ViewsCount}
	if status == entity.PromotionStatusPending && !now.Before(row.HoldExpiresAt) {
		status = entity.PromotionStatusActive
		step.activate = true
	}
	if status != entity.PromotionStatusActive || row.ViewsCount >= row.TargetViews {
		return settlementStep{}, entity.ErrPromotionNotActive
	}

	// An incomplete watch burns the viewer's one-shot eligibility but
	// credits nothing and leaves the counters alone.
	if entity.MeetsWatchThreshold(row.DurationSeconds, watchedSeconds) {
		step.completed = true
		step.coinsEarned = row.CoinRewardPerView
		step.viewsCount = row.ViewsCount + 1
		step.promotionCompleted = step.viewsCount >= row.TargetViews
	}
	return step, nil
}

// Settle validates a watch session and applies all of its effects in one
// transaction: the view record insert, the viewer credit, the promotion
// counter and the completed transition. Eligibility is re-checked here under
// the promotion row lock rather than trusted from an earlier NextForViewer
// call. The unique index on (promotion_id, viewer_account_id) remains the
// backstop for two concurrent settlements racing past the prior-view lookup.
func (r *viewRepository) Settle(viewerID, promotionID string, watchedSeconds int, now time.Time) (*entity.Settlement, *entity.Promotion, error) {
	var settlement entity.Settlement
	var row model.PromotionModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", promotionID).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrPromotionNotFound
			}
			return err
		}

		var priorViews int64
		if err := tx.Model(&model.ViewRecordModel{}).
			Where("promotion_id = ? AND viewer_account_id = ?", row.ID, viewerID).
			Count(&priorViews).Error; err != nil {
			return fmt.Errorf("failed to check for a prior view: %w", err)
		}

		step, err := planSettlement(&row, viewerID, watchedSeconds, priorViews > 0, now)
		if err != nil {
			return err
		}

		if step.activate {
			// Materialize the time-driven transition while we hold the lock.
			row.Status = string(entity.PromotionStatusActive)
			if err := tx.Model(&model.PromotionModel{}).
				Where("id = ?", row.ID).
				Update("status", row.Status).Error; err != nil {
				return fmt.Errorf("failed to activate promotion: %w", err)
			}
		}

		record := &model.ViewRecordModel{
			PromotionID:            row.ID,
			ViewerAccountID:        viewerID,
			WatchedDurationSeconds: watchedSeconds,
			Completed:              step.completed,
			CoinsEarned:            step.coinsEarned,
		}
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entity.ErrAlreadyViewed
			}
			return fmt.Errorf("failed to create view record: %w", err)
		}

		settlement = entity.Settlement{
			Completed:   step.completed,
			CoinsEarned: step.coinsEarned,
			ViewsCount:  row.ViewsCount,
		}

		if !step.completed {
			return nil
		}

		if _, err := applyLedgerEntry(tx, viewerID, step.coinsEarned,
			entity.TransactionTypeVideoWatch,
			fmt.Sprintf("Watched %q", row.Title),
			&row.ID); err != nil {
			return err
		}

		row.ViewsCount = step.viewsCount
		updates := map[string]interface{}{"views_count": row.ViewsCount}
		if step.promotionCompleted {
			row.Status = string(entity.PromotionStatusCompleted)
			updates["status"] = row.Status
			settlement.PromotionCompleted = true
		}
		if err := tx.Model(&model.PromotionModel{}).
			Where("id = ?", row.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update promotion progress: %w", err)
		}

		settlement.ViewsCount = row.ViewsCount
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &settlement, ToPromotionEntity(&row), nil
}

func (r *viewRepository) ListByViewer(viewerID string, limit, offset int) ([]*entity.ViewRecord, error) {
	var rows []model.ViewRecordModel
	query := r.db.Where("viewer_account_id = ?", viewerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.ViewRecord, len(rows))
	for i := range rows {
		records[i] = ToViewRecordEntity(&rows[i])
	}
	return records, nil
}
