package usecase

import (
	"errors"
	"fmt"
	"time"

	"vidgro/pkg/jwt"
	"vidgro/pkg/logger"
	"vidgro/pkg/models"
	"vidgro/pkg/queue"
	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(email, username, password, referralCode string) (*entity.Account, string, error)
	Login(email, password string) (*entity.Account, string, error)
	GetAccount(accountID string) (*entity.Account, error)
	ActivateVIP(accountID string, expiresAt *time.Time) (*entity.Account, error)
	CloseAccount(accountID string) error
}

type authUseCase struct {
	accountRepo persistent.AccountRepository
	jwtService  *jwt.Service
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewAuthUseCase(
	accountRepo persistent.AccountRepository,
	jwtService *jwt.Service,
	queueClient *queue.Client,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *authUseCase) Register(email, username, password, referralCode string) (*entity.Account, string, error) {
	if _, err := uc.accountRepo.GetByEmail(email); err == nil {
		return nil, "", entity.ErrEmailTaken
	}
	if _, err := uc.accountRepo.GetByUsername(username); err == nil {
		return nil, "", entity.ErrUsernameTaken
	}

	var referrer *entity.Account
	if referralCode != "" {
		var err error
		referrer, err = uc.accountRepo.GetByReferralCode(referralCode)
		if err != nil {
			return nil, "", entity.ErrInvalidReferral
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	account := &entity.Account{
		Email:        email,
		Username:     username,
		Password:     string(hashedPassword),
		ReferralCode: models.NewReferralCode(),
		IsActive:     true,
	}
	if referrer != nil {
		account.ReferredBy = &referrer.ID
	}

	created, err := uc.accountRepo.CreateWithSignupBonus(account, referrer)
	if err != nil {
		// A concurrent registration loses the unique-index race after
		// passing the availability check above; keep the taxonomy intact.
		if errors.Is(err, entity.ErrEmailTaken) || errors.Is(err, entity.ErrUsernameTaken) {
			return nil, "", err
		}
		uc.logger.Error("Failed to create account: %v", err)
		return nil, "", fmt.Errorf("failed to create account")
	}

	token, err := uc.jwtService.GenerateToken(created.ID, models.RoleUser)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	uc.publishTransactionEvent(created.ID, "signup")

	created.Password = ""
	return created, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.Account, string, error) {
	account, err := uc.accountRepo.GetByEmail(email)
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(account.ID, models.RoleUser)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	account.Password = ""
	return account, token, nil
}

func (uc *authUseCase) GetAccount(accountID string) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	account.Password = ""
	return account, nil
}

// ActivateVIP is the payment-provider glue: the receipt has already been
// validated upstream, the engine only records the tier and the bookkeeping
// ledger row.
func (uc *authUseCase) ActivateVIP(accountID string, expiresAt *time.Time) (*entity.Account, error) {
	account, err := uc.accountRepo.SetVIP(accountID, expiresAt)
	if err != nil {
		return nil, err
	}

	uc.publishTransactionEvent(accountID, "vip_purchase")

	account.Password = ""
	return account, nil
}

func (uc *authUseCase) CloseAccount(accountID string) error {
	return uc.accountRepo.Deactivate(accountID)
}

func (uc *authUseCase) publishTransactionEvent(accountID, kind string) {
	if uc.queueClient == nil {
		return
	}
	go func() {
		event := queue.Event{
			Type:      queue.EventTransactionCreated,
			AccountID: accountID,
			Data:      map[string]interface{}{"kind": kind},
		}
		if err := uc.queueClient.PublishEvent(event); err != nil {
			uc.logger.Error("Failed to publish transaction event: %v", err)
		}
	}()
}
