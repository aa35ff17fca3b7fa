package usecase

import (
	"fmt"

	"vidgro/pkg/logger"
	"vidgro/pkg/queue"
	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/repo/persistent"
)

type LedgerUseCase interface {
	GetBalance(accountID string) (int, error)
	GetTransactions(accountID string, limit, offset int) ([]*entity.Transaction, error)
	ApplyTransaction(accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*entity.Transaction, error)
}

type ledgerUseCase struct {
	accountRepo persistent.AccountRepository
	ledgerRepo  persistent.LedgerRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewLedgerUseCase(
	accountRepo persistent.AccountRepository,
	ledgerRepo persistent.LedgerRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) LedgerUseCase {
	return &ledgerUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *ledgerUseCase) GetBalance(accountID string) (int, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (uc *ledgerUseCase) GetTransactions(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	transactions, err := uc.ledgerRepo.GetTransactions(accountID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to get transactions: %v", err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// ApplyTransaction is the single entry point for balance mutations coming
// from outside the promotion/view flows (payment provider records, admin
// adjustments). Debits that would overdraw fail with ErrInsufficientFunds
// and leave the balance untouched.
func (uc *ledgerUseCase) ApplyTransaction(accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*entity.Transaction, error) {
	transaction, err := uc.ledgerRepo.ApplyTransaction(accountID, amount, txType, description, referenceID)
	if err != nil {
		return nil, err
	}

	if uc.queueClient != nil {
		go func() {
			event := queue.Event{
				Type:      queue.EventTransactionCreated,
				AccountID: accountID,
				Data: map[string]interface{}{
					"amount": transaction.Amount,
					"type":   string(transaction.Type),
				},
			}
			if err := uc.queueClient.PublishEvent(event); err != nil {
				uc.logger.Error("Failed to publish transaction event: %v", err)
			}
		}()
	}

	return transaction, nil
}
