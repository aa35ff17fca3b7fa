package persistent

import (
	"errors"
	"fmt"
	"time"

	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	CreateWithSignupBonus(account *entity.Account, referrer *entity.Account) (*entity.Account, error)
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	GetByUsername(username string) (*entity.Account, error)
	GetByReferralCode(code string) (*entity.Account, error)
	SetVIP(id string, expiresAt *time.Time) (*entity.Account, error)
	Deactivate(id string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// CreateWithSignupBonus inserts the account, records the signup bonus in the
// ledger and, when a referrer is present, pays both referral bonuses. All of
// it commits or none of it does.
func (r *accountRepository) CreateWithSignupBonus(account *entity.Account, referrer *entity.Account) (*entity.Account, error) {
	row := &model.AccountModel{
		ID:           account.ID,
		Email:        account.Email,
		Username:     account.Username,
		Password:     account.Password,
		Balance:      0,
		ReferralCode: account.ReferralCode,
		ReferredBy:   account.ReferredBy,
		IsActive:     true,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent registration can slip past the usecase's
				// availability check; the unique indexes settle the race.
				return r.duplicateAccountError(account)
			}
			return fmt.Errorf("failed to create account: %w", err)
		}

		if _, err := applyLedgerEntry(tx, row.ID, entity.SignupBonusCoins,
			entity.TransactionTypeSignupBonus, "Welcome bonus", nil); err != nil {
			return err
		}

		if referrer != nil {
			if _, err := applyLedgerEntry(tx, referrer.ID, entity.ReferralBonusReferrer,
				entity.TransactionTypeReferralBonus, "Referral bonus for inviting "+account.Username, nil); err != nil {
				return err
			}
			if _, err := applyLedgerEntry(tx, row.ID, entity.ReferralBonusReferred,
				entity.TransactionTypeReferralBonus, "Referral bonus for joining with a code", nil); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(row.ID)
}

// duplicateAccountError resolves which unique index a failed insert hit by
// looking up the conflicting column. Falls back to ErrUsernameTaken when the
// email is free.
func (r *accountRepository) duplicateAccountError(account *entity.Account) error {
	if _, err := r.GetByEmail(account.Email); err == nil {
		return entity.ErrEmailTaken
	}
	return entity.ErrUsernameTaken
}

func (r *accountRepository) GetByID(id string) (*entity.Account, error) {
	var row model.AccountModel
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, err
	}
	return ToAccountEntity(&row), nil
}

func (r *accountRepository) GetByEmail(email string) (*entity.Account, error) {
	var row model.AccountModel
	if err := r.db.Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, err
	}
	return ToAccountEntity(&row), nil
}

func (r *accountRepository) GetByUsername(username string) (*entity.Account, error) {
	var row model.AccountModel
	if err := r.db.Where("username = ?", username).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, err
	}
	return ToAccountEntity(&row), nil
}

func (r *accountRepository) GetByReferralCode(code string) (*entity.Account, error) {
	var row model.AccountModel
	if err := r.db.Where("referral_code = ?", code).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, err
	}
	return ToAccountEntity(&row), nil
}

// SetVIP records the tier change and a zero-amount vip_purchase ledger row
// for bookkeeping. Receipt validation happens upstream in the payment
// provider; the engine trusts the call.
func (r *accountRepository) SetVIP(id string, expiresAt *time.Time) (*entity.Account, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.AccountModel{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_vip":         true,
				"vip_expires_at": expiresAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrAccountNotFound
		}

		_, err := applyLedgerEntry(tx, id, 0, entity.TransactionTypeVIPPurchase, "VIP subscription activated", nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

func (r *accountRepository) Deactivate(id string) error {
	result := r.db.Model(&model.AccountModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrAccountNotFound
	}
	return nil
}
