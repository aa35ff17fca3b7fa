package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeVideoPromotion  TransactionType = "video_promotion"
	TransactionTypeVideoWatch      TransactionType = "video_watch"
	TransactionTypeReferralBonus   TransactionType = "referral_bonus"
	TransactionTypeSignupBonus     TransactionType = "signup_bonus"
	TransactionTypeVIPPurchase     TransactionType = "vip_purchase"
	TransactionTypeRefund          TransactionType = "refund"
	TransactionTypeAdminAdjustment TransactionType = "admin_adjustment"
)

// Transaction is an append-only ledger row. The account balance is a cached
// projection: for every account, balance == sum(transactions.amount).
type Transaction struct {
	ID            string          `gorm:"type:uuid;primary_key" json:"id"`
	AccountID     string          `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount        int             `gorm:"not null" json:"amount"`
	Type          TransactionType `gorm:"type:varchar(32);not null" json:"type"`
	Description   string          `json:"description"`
	ReferenceID   *string         `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	BalanceBefore int             `json:"balance_before"`
	BalanceAfter  int             `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
