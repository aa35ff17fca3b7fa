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

type PromotionRepository interface {
	CreateWithCharge(promotion *entity.Promotion) (*entity.Promotion, error)
	CancelWithRefund(promotionID, ownerID string, now time.Time) (int, *entity.Promotion, error)
	GetByID(id string) (*entity.Promotion, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Promotion, error)
	NextForViewer(viewerID string, now time.Time) (*entity.Promotion, error)
	SetThumbnailURL(id, url string) error
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

// CreateWithCharge debits the owner for the full promotion cost and inserts
// the promotion in one transaction. If the insert fails, the debit rolls
// back with it.
func (r *promotionRepository) CreateWithCharge(promotion *entity.Promotion) (*entity.Promotion, error) {
	row := &model.PromotionModel{
		ID:                promotion.ID,
		OwnerAccountID:    promotion.OwnerAccountID,
		VideoID:           promotion.VideoID,
		Title:             promotion.Title,
		DurationSeconds:   promotion.DurationSeconds,
		CoinCost:          promotion.CoinCost,
		CoinRewardPerView: promotion.CoinRewardPerView,
		TargetViews:       promotion.TargetViews,
		ViewsCount:        0,
		Status:            string(entity.PromotionStatusPending),
		HoldExpiresAt:     promotion.HoldExpiresAt,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if row.ID == "" {
			// Generate up front so the ledger row can reference it.
			if err := row.BeforeCreate(tx); err != nil {
				return err
			}
		}

		if _, err := applyLedgerEntry(tx, row.OwnerAccountID, -row.CoinCost,
			entity.TransactionTypeVideoPromotion,
			fmt.Sprintf("Promoted video %q for %d views", row.Title, row.TargetViews),
			&row.ID); err != nil {
			return err
		}

		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create promotion: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ToPromotionEntity(row), nil
}

// CancelWithRefund credits the owner per the refund policy and marks the
// promotion cancelled, atomically. Completed promotions cannot be cancelled.
func (r *promotionRepository) CancelWithRefund(promotionID, ownerID string, now time.Time) (int, *entity.Promotion, error) {
	var refund int
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

		if row.OwnerAccountID != ownerID {
			return entity.ErrNotOwner
		}
		switch entity.PromotionStatus(row.Status) {
		case entity.PromotionStatusCompleted:
			return entity.ErrPromotionCompleted
		case entity.PromotionStatusCancelled:
			return entity.ErrPromotionNotActive
		}

		refund = entity.RefundAmount(row.CoinCost, row.HoldExpiresAt, now)

		if _, err := applyLedgerEntry(tx, ownerID, refund,
			entity.TransactionTypeRefund,
			fmt.Sprintf("Refund for cancelled promotion %q", row.Title),
			&row.ID); err != nil {
			return err
		}

		row.Status = string(entity.PromotionStatusCancelled)
		if err := tx.Model(&model.PromotionModel{}).
			Where("id = ?", row.ID).
			Update("status", row.Status).Error; err != nil {
			return fmt.Errorf("failed to cancel promotion: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	return refund, ToPromotionEntity(&row), nil
}

func (r *promotionRepository) GetByID(id string) (*entity.Promotion, error) {
	var row model.PromotionModel
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrPromotionNotFound
		}
		return nil, err
	}
	return ToPromotionEntity(&row), nil
}

func (r *promotionRepository) ListByOwner(ownerID string, limit, offset int) ([]*entity.Promotion, error) {
	var rows []model.PromotionModel
	query := r.db.Where("owner_account_id = ?", ownerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	promotions := make([]*entity.Promotion, len(rows))
	for i := range rows {
		promotions[i] = ToPromotionEntity(&rows[i])
	}
	return promotions, nil
}

// NextForViewer picks the newest watchable promotion for a viewer: logically
// active (stored active, or pending with an elapsed hold), short of its view
// target, not the viewer's own, owner account still active, and never watched
// by this viewer before. Returns nil with no error when nothing qualifies.
// No reservation is taken; settlement re-checks everything.
func (r *promotionRepository) NextForViewer(viewerID string, now time.Time) (*entity.Promotion, error) {
	var row model.PromotionModel
	err := r.db.
		Joins("JOIN accounts ON accounts.id = promotions.owner_account_id").
		Where("(promotions.status = ? OR (promotions.status = ? AND promotions.hold_expires_at <= ?))",
			string(entity.PromotionStatusActive), string(entity.PromotionStatusPending), now).
		Where("promotions.views_count < promotions.target_views").
		Where("promotions.owner_account_id <> ?", viewerID).
		Where("accounts.is_active = ?", true).
		Where("NOT EXISTS (SELECT 1 FROM view_records WHERE view_records.promotion_id = promotions.id AND view_records.viewer_account_id = ?)", viewerID).
		Order("promotions.created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToPromotionEntity(&row), nil
}

func (r *promotionRepository) SetThumbnailURL(id, url string) error {
	result := r.db.Model(&model.PromotionModel{}).
		Where("id = ?", id).
		Update("thumbnail_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrPromotionNotFound
	}
	return nil
}
