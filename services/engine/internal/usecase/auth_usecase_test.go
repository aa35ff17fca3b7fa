package usecase

import (
	"testing"
	"time"

	"vidgro/pkg/jwt"
	"vidgro/pkg/logger"
	"vidgro/services/engine/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUseCase(accountRepo *MockAccountRepository) AuthUseCase {
	return NewAuthUseCase(accountRepo, jwt.NewService("test-secret"), nil, logger.New())
}

func TestRegister_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	accountRepo.On("GetByEmail", "new@example.com").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByUsername", "newuser").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("CreateWithSignupBonus", mock.MatchedBy(func(a *entity.Account) bool {
		return a.Email == "new@example.com" && a.Username == "newuser" && a.ReferredBy == nil
	}), (*entity.Account)(nil)).Return(&entity.Account{
		ID:       "account-1",
		Email:    "new@example.com",
		Username: "newuser",
		Balance:  entity.SignupBonusCoins,
		IsActive: true,
	}, nil)

	account, token, err := uc.Register("new@example.com", "newuser", "password123", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.SignupBonusCoins, account.Balance)
	assert.Empty(t, account.Password)
	accountRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	accountRepo.On("GetByEmail", "taken@example.com").Return(&entity.Account{ID: "existing"}, nil)

	_, _, err := uc.Register("taken@example.com", "newuser", "password123", "")
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestRegister_WithReferralCode(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	referrer := &entity.Account{ID: "referrer-1", ReferralCode: "FRIEND01"}

	accountRepo.On("GetByEmail", "new@example.com").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByUsername", "newuser").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByReferralCode", "FRIEND01").Return(referrer, nil)
	accountRepo.On("CreateWithSignupBonus", mock.MatchedBy(func(a *entity.Account) bool {
		return a.ReferredBy != nil && *a.ReferredBy == "referrer-1"
	}), referrer).Return(&entity.Account{ID: "account-1"}, nil)

	_, _, err := uc.Register("new@example.com", "newuser", "password123", "FRIEND01")

	assert.NoError(t, err)
	accountRepo.AssertExpectations(t)
}

func TestRegister_InvalidReferralCode(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	accountRepo.On("GetByEmail", "new@example.com").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByUsername", "newuser").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByReferralCode", "BOGUS").Return(nil, entity.ErrAccountNotFound)

	_, _, err := uc.Register("new@example.com", "newuser", "password123", "BOGUS")
	assert.ErrorIs(t, err, entity.ErrInvalidReferral)
}

func TestRegister_LostUniqueIndexRaceKeepsTaxonomy(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	// A concurrent registration can insert the same email between the
	// availability check and the create; the repo surfaces the unique-index
	// violation as ErrEmailTaken and Register must pass it through rather
	// than flattening it into a generic failure.
	accountRepo.On("GetByEmail", "racer@example.com").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByUsername", "racer").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("CreateWithSignupBonus", mock.Anything, (*entity.Account)(nil)).
		Return(nil, entity.ErrEmailTaken)

	_, _, err := uc.Register("racer@example.com", "racer", "password123", "")
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestRegister_LostUsernameRaceKeepsTaxonomy(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	accountRepo.On("GetByEmail", "racer@example.com").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("GetByUsername", "racer").Return(nil, entity.ErrAccountNotFound)
	accountRepo.On("CreateWithSignupBonus", mock.Anything, (*entity.Account)(nil)).
		Return(nil, entity.ErrUsernameTaken)

	_, _, err := uc.Register("racer@example.com", "racer", "password123", "")
	assert.ErrorIs(t, err, entity.ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	accountRepo.On("GetByEmail", "user@example.com").Return(&entity.Account{
		ID:       "account-1",
		Email:    "user@example.com",
		Password: string(hashed),
	}, nil)

	account, token, err := uc.Login("user@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, account.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	accountRepo.On("GetByEmail", "user@example.com").Return(&entity.Account{
		ID:       "account-1",
		Password: string(hashed),
	}, nil)

	_, _, err := uc.Login("user@example.com", "wrong-password")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	accountRepo.On("GetByEmail", "nobody@example.com").Return(nil, entity.ErrAccountNotFound)

	_, _, err := uc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestActivateVIP(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	uc := newAuthUseCase(accountRepo)

	accountRepo.On("SetVIP", "account-1", (*time.Time)(nil)).Return(&entity.Account{
		ID:    "account-1",
		IsVIP: true,
	}, nil)

	account, err := uc.ActivateVIP("account-1", nil)

	assert.NoError(t, err)
	assert.True(t, account.IsVIP)
}
