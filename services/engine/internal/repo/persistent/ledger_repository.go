package persistent

import (
	"errors"
	"fmt"

	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository interface {
	ApplyTransaction(accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*entity.Transaction, error)
	GetTransactions(accountID string, limit, offset int) ([]*entity.Transaction, error)
	SumTransactions(accountID string) (int, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// newLedgerEntry validates an amount against the current balance and builds
// the ledger row with its before/after bookkeeping. Debits that would push
// the balance below zero are rejected outright.
func newLedgerEntry(balance int, accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*model.TransactionModel, error) {
	if amount < 0 && balance+amount < 0 {
		return nil, entity.ErrInsufficientFunds
	}
	return &model.TransactionModel{
		AccountID:     accountID,
		Amount:        amount,
		Type:          string(txType),
		Description:   description,
		ReferenceID:   referenceID,
		BalanceBefore: balance,
		BalanceAfter:  balance + amount,
	}, nil
}

// applyLedgerEntry is the single write path for balances. It locks the
// account row, rejects debits that would overdraw, appends the ledger row
// and updates the cached balance. Callers must invoke it inside a gorm
// transaction so the lock covers the whole operation.
func applyLedgerEntry(tx *gorm.DB, accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*model.TransactionModel, error) {
	var account model.AccountModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", accountID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	entry, err := newLedgerEntry(account.Balance, accountID, amount, txType, description, referenceID)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := tx.Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		Update("balance", entry.BalanceAfter).Error; err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return entry, nil
}

func (r *ledgerRepository) ApplyTransaction(accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*entity.Transaction, error) {
	var entry *model.TransactionModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = applyLedgerEntry(tx, accountID, amount, txType, description, referenceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ToTransactionEntity(entry), nil
}

func (r *ledgerRepository) GetTransactions(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	var rows []model.TransactionModel
	query := r.db.Where("account_id = ?", accountID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(rows))
	for i := range rows {
		transactions[i] = ToTransactionEntity(&rows[i])
	}
	return transactions, nil
}

// SumTransactions recomputes the balance from the ledger. The cached balance
// on the account row must always equal this sum.
func (r *ledgerRepository) SumTransactions(accountID string) (int, error) {
	var sum *int
	err := r.db.Model(&model.TransactionModel{}).
		Where("account_id = ?", accountID).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
