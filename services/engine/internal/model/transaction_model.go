package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID            string  `gorm:"type:uuid;primary_key"`
	AccountID     string  `gorm:"type:uuid;not null;index"`
	Amount        int     `gorm:"not null"`
	Type          string  `gorm:"type:varchar(32);not null"`
	Description   string
	ReferenceID   *string `gorm:"type:uuid;index"`
	BalanceBefore int
	BalanceAfter  int
	CreatedAt     time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
