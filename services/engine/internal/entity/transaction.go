package entity

import "time"

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

type Transaction struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Amount        int             `json:"amount"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	ReferenceID   *string         `json:"reference_id,omitempty"`
	BalanceBefore int             `json:"balance_before"`
	BalanceAfter  int             `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}
