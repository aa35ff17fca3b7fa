package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromotionModel struct {
	ID                string    `gorm:"type:uuid;primary_key"`
	OwnerAccountID    string    `gorm:"type:uuid;not null;index"`
	VideoID           string    `gorm:"type:varchar(32);not null"`
	Title             string    `gorm:"not null"`
	ThumbnailURL      string
	DurationSeconds   int       `gorm:"not null"`
	CoinCost          int       `gorm:"not null"`
	CoinRewardPerView int       `gorm:"not null"`
	TargetViews       int       `gorm:"not null"`
	ViewsCount        int       `gorm:"not null;default:0"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	HoldExpiresAt     time.Time `gorm:"not null"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (PromotionModel) TableName() string {
	return "promotions"
}

func (p *PromotionModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
