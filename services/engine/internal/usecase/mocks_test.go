package usecase

import (
	"time"

	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of persistent.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateWithSignupBonus(account *entity.Account, referrer *entity.Account) (*entity.Account, error) {
	args := m.Called(account, referrer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(id string) (*entity.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(email string) (*entity.Account, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(username string) (*entity.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByReferralCode(code string) (*entity.Account, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) SetVIP(id string, expiresAt *time.Time) (*entity.Account, error) {
	args := m.Called(id, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Deactivate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.AccountRepository = (*MockAccountRepository)(nil)

// MockLedgerRepository is a mock implementation of persistent.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ApplyTransaction(accountID string, amount int, txType entity.TransactionType, description string, referenceID *string) (*entity.Transaction, error) {
	args := m.Called(accountID, amount, txType, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) GetTransactions(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SumTransactions(accountID string) (int, error) {
	args := m.Called(accountID)
	return args.Int(0), args.Error(1)
}

var _ persistent.LedgerRepository = (*MockLedgerRepository)(nil)

// MockPromotionRepository is a mock implementation of persistent.PromotionRepository
type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) CreateWithCharge(promotion *entity.Promotion) (*entity.Promotion, error) {
	args := m.Called(promotion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) CancelWithRefund(promotionID, ownerID string, now time.Time) (int, *entity.Promotion, error) {
	args := m.Called(promotionID, ownerID, now)
	if args.Get(1) == nil {
		return args.Int(0), nil, args.Error(2)
	}
	return args.Int(0), args.Get(1).(*entity.Promotion), args.Error(2)
}

func (m *MockPromotionRepository) GetByID(id string) (*entity.Promotion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) ListByOwner(ownerID string, limit, offset int) ([]*entity.Promotion, error) {
	args := m.Called(ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) NextForViewer(viewerID string, now time.Time) (*entity.Promotion, error) {
	args := m.Called(viewerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) SetThumbnailURL(id, url string) error {
	args := m.Called(id, url)
	return args.Error(0)
}

var _ persistent.PromotionRepository = (*MockPromotionRepository)(nil)

// MockViewRepository is a mock implementation of persistent.ViewRepository
type MockViewRepository struct {
	mock.Mock
}

func (m *MockViewRepository) Settle(viewerID, promotionID string, watchedSeconds int, now time.Time) (*entity.Settlement, *entity.Promotion, error) {
	args := m.Called(viewerID, promotionID, watchedSeconds, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.Settlement), args.Get(1).(*entity.Promotion), args.Error(2)
}

func (m *MockViewRepository) ListByViewer(viewerID string, limit, offset int) ([]*entity.ViewRecord, error) {
	args := m.Called(viewerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ViewRecord), args.Error(1)
}

var _ persistent.ViewRepository = (*MockViewRepository)(nil)
