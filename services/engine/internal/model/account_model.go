package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountModel struct {
	ID           string     `gorm:"type:uuid;primary_key"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Username     string     `gorm:"uniqueIndex;not null"`
	Password     string     `gorm:"not null"`
	Balance      int        `gorm:"not null;default:0"`
	IsVIP        bool       `gorm:"column:is_vip;default:false"`
	VIPExpiresAt *time.Time `gorm:"column:vip_expires_at"`
	ReferralCode string     `gorm:"uniqueIndex;not null"`
	ReferredBy   *string    `gorm:"type:uuid"`
	IsActive     bool       `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (AccountModel) TableName() string {
	return "accounts"
}

func (a *AccountModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
