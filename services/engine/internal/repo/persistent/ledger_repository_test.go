package persistent

import (
	"testing"

	"vidgro/services/engine/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestNewLedgerEntry_Credit(t *testing.T) {
	entry, err := newLedgerEntry(100, "account-1", 600, entity.TransactionTypeSignupBonus, "Welcome bonus", nil)

	assert.NoError(t, err)
	assert.Equal(t, 100, entry.BalanceBefore)
	assert.Equal(t, 700, entry.BalanceAfter)
}

func TestNewLedgerEntry_DebitWithinBalance(t *testing.T) {
	ref := "promo-1"
	entry, err := newLedgerEntry(700, "account-1", -600, entity.TransactionTypeVideoPromotion, "Promoted video", &ref)

	assert.NoError(t, err)
	assert.Equal(t, 700, entry.BalanceBefore)
	assert.Equal(t, 100, entry.BalanceAfter)
	assert.Equal(t, &ref, entry.ReferenceID)
}

func TestNewLedgerEntry_OverdrawRejected(t *testing.T) {
	_, err := newLedgerEntry(100, "account-1", -150, entity.TransactionTypeVideoPromotion, "Promoted video", nil)
	assert.ErrorIs(t, err, entity.ErrInsufficientFunds)
}

func TestNewLedgerEntry_DebitToExactlyZero(t *testing.T) {
	entry, err := newLedgerEntry(150, "account-1", -150, entity.TransactionTypeVideoPromotion, "Promoted video", nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, entry.BalanceAfter)
}

// The cached balance must always equal the sum of the ledger, and never dip
// below zero no matter what order the entries arrive in.
func TestLedgerSequence_SumMatchesBalance(t *testing.T) {
	amounts := []int{100, 200, -250, 500, -400, -200, 80}

	balance := 0
	sum := 0
	for _, amount := range amounts {
		entry, err := newLedgerEntry(balance, "account-1", amount, entity.TransactionTypeAdminAdjustment, "adjustment", nil)
		if amount < 0 && balance+amount < 0 {
			assert.ErrorIs(t, err, entity.ErrInsufficientFunds)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, balance, entry.BalanceBefore)
		balance = entry.BalanceAfter
		sum += amount
		assert.GreaterOrEqual(t, balance, 0)
	}

	assert.Equal(t, sum, balance)
}
