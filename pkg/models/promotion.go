package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromotionStatus string

const (
	PromotionStatusPending   PromotionStatus = "pending"
	PromotionStatusActive    PromotionStatus = "active"
	PromotionStatusCompleted PromotionStatus = "completed"
	PromotionStatusCancelled PromotionStatus = "cancelled"
)

type Promotion struct {
	ID                string          `gorm:"type:uuid;primary_key" json:"id"`
	OwnerAccountID    string          `gorm:"type:uuid;not null;index" json:"owner_account_id"`
	VideoID           string          `gorm:"type:varchar(32);not null" json:"video_id"`
	Title             string          `gorm:"not null" json:"title"`
	ThumbnailURL      string          `json:"thumbnail_url,omitempty"`
	DurationSeconds   int             `gorm:"not null" json:"duration_seconds"`
	CoinCost          int             `gorm:"not null" json:"coin_cost"`
	CoinRewardPerView int             `gorm:"not null" json:"coin_reward_per_view"`
	TargetViews       int             `gorm:"not null" json:"target_views"`
	ViewsCount        int             `gorm:"not null;default:0" json:"views_count"`
	Status            PromotionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	HoldExpiresAt     time.Time       `gorm:"not null" json:"hold_expires_at"`
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
