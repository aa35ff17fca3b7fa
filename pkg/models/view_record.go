package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewRecord stores one watch attempt per viewer per promotion. The composite
// unique index is the authoritative guard against duplicate settlement: two
// concurrent completions for the same pair reduce to one insert and one
// unique-violation error.
type ViewRecord struct {
	ID                     string    `gorm:"type:uuid;primary_key" json:"id"`
	PromotionID            string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_promotion_viewer" json:"promotion_id"`
	ViewerAccountID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_view_promotion_viewer" json:"viewer_account_id"`
	WatchedDurationSeconds int       `gorm:"not null" json:"watched_duration_seconds"`
	Completed              bool      `gorm:"not null" json:"completed"`
	CoinsEarned            int       `gorm:"not null;default:0" json:"coins_earned"`
	CreatedAt              time.Time `json:"created_at"`
}

func (v *ViewRecord) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
