package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewRecordModel carries the composite unique index that turns concurrent
// settlements for the same (promotion, viewer) pair into a deterministic
// rejection instead of a double credit.
type ViewRecordModel struct {
	ID                     string `gorm:"type:uuid;primary_key"`
	PromotionID            string `gorm:"type:uuid;not null;uniqueIndex:idx_view_promotion_viewer"`
	ViewerAccountID        string `gorm:"type:uuid;not null;uniqueIndex:idx_view_promotion_viewer"`
	WatchedDurationSeconds int    `gorm:"not null"`
	Completed              bool   `gorm:"not null"`
	CoinsEarned            int    `gorm:"not null;default:0"`
	CreatedAt              time.Time
}

func (ViewRecordModel) TableName() string {
	return "view_records"
}

func (v *ViewRecordModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
