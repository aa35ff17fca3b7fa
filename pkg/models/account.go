package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleUser = "user"

type Account struct {
	ID           string     `gorm:"type:uuid;primary_key" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Password     string     `gorm:"not null" json:"-"`
	Balance      int        `gorm:"not null;default:0;check:balance >= 0" json:"balance"`
	IsVIP        bool       `gorm:"default:false" json:"is_vip"`
	VIPExpiresAt *time.Time `json:"vip_expires_at,omitempty"`
	ReferralCode string     `gorm:"uniqueIndex;not null" json:"referral_code"`
	ReferredBy   *string    `gorm:"type:uuid" json:"referred_by,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.ReferralCode == "" {
		a.ReferralCode = NewReferralCode()
	}
	return nil
}

// NewReferralCode generates a short shareable code. Uniqueness is enforced
// by the database index; collisions on 8 hex chars are rare enough that a
// failed insert is simply retried by the caller.
func NewReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
