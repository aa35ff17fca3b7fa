package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_BeforeCreate(t *testing.T) {
	account := &Account{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
		Balance:  100,
		IsActive: true,
	}

	// BeforeCreate should set ID and referral code if empty
	err := account.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Len(t, account.ReferralCode, 8)
}

func TestAccount_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	account := &Account{
		ID:           existingID,
		Email:        "test@example.com",
		Username:     "testuser",
		Password:     "password",
		ReferralCode: "ABCD1234",
	}

	err := account.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID and referral code should remain unchanged if already set
	assert.Equal(t, existingID, account.ID)
	assert.Equal(t, "ABCD1234", account.ReferralCode)
}

func TestNewReferralCode(t *testing.T) {
	code := NewReferralCode()
	assert.Len(t, code, 8)

	other := NewReferralCode()
	assert.NotEqual(t, code, other)
}

func TestTransaction_BeforeCreate(t *testing.T) {
	transaction := &Transaction{
		AccountID: "account-123",
		Amount:    -600,
		Type:      TransactionTypeVideoPromotion,
	}

	err := transaction.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, transaction.ID)
}

func TestPromotion_BeforeCreate(t *testing.T) {
	promotion := &Promotion{
		OwnerAccountID:  "owner-123",
		VideoID:         "dQw4w9WgXcQ",
		Title:           "Test Video",
		DurationSeconds: 120,
		TargetViews:     200,
		Status:          PromotionStatusPending,
	}

	err := promotion.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, promotion.ID)
}

func TestViewRecord_BeforeCreate(t *testing.T) {
	record := &ViewRecord{
		PromotionID:     "promotion-123",
		ViewerAccountID: "viewer-123",
		Completed:       true,
	}

	err := record.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, record.ID)
}

func TestPromotionStatus_Constants(t *testing.T) {
	// Test that status constants are defined
	assert.Equal(t, PromotionStatus("pending"), PromotionStatusPending)
	assert.Equal(t, PromotionStatus("active"), PromotionStatusActive)
	assert.Equal(t, PromotionStatus("completed"), PromotionStatusCompleted)
	assert.Equal(t, PromotionStatus("cancelled"), PromotionStatusCancelled)
}

func TestTransactionType_Constants(t *testing.T) {
	assert.Equal(t, TransactionType("video_promotion"), TransactionTypeVideoPromotion)
	assert.Equal(t, TransactionType("video_watch"), TransactionTypeVideoWatch)
	assert.Equal(t, TransactionType("referral_bonus"), TransactionTypeReferralBonus)
	assert.Equal(t, TransactionType("vip_purchase"), TransactionTypeVIPPurchase)
	assert.Equal(t, TransactionType("refund"), TransactionTypeRefund)
}
