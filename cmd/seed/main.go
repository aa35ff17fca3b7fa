package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"vidgro/pkg/config"
	"vidgro/pkg/database"
	"vidgro/pkg/logger"
	"vidgro/pkg/models"
	"vidgro/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	signupBonus = 100
	demoTopUp   = 5000
	holdPeriod  = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testAccounts := []struct {
		email    string
		username string
		password string
	}{
		{"alice@test.com", "alice_promo", "password123"},
		{"bob@test.com", "bob_promo", "password123"},
		{"charlie@test.com", "charlie_promo", "password123"},
		{"diana@test.com", "diana_promo", "password123"},
		{"eve@test.com", "eve_promo", "password123"},
	}

	accountIDs := make([]string, 0, len(testAccounts))

	for _, accountData := range testAccounts {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(accountData.password), bcrypt.DefaultCost)

		account := &models.Account{
			Email:    accountData.email,
			Username: accountData.username,
			Password: string(hashedPassword),
			IsActive: true,
		}

		if err := account.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate account ID: %w", err)
		}

		var existingAccount models.Account
		result := db.Where("email = ? OR username = ?", account.Email, account.Username).First(&existingAccount)
		if result.Error == nil {
			log.Info("Account %s already exists, skipping", account.Username)
			accountIDs = append(accountIDs, existingAccount.ID)
			continue
		}

		if err := db.Create(account).Error; err != nil {
			log.Error("Failed to create account %s: %v", account.Username, err)
			continue
		}

		log.Info("Created account: %s (%s)", account.Username, account.Email)
		accountIDs = append(accountIDs, account.ID)

		// Signup bonus plus a demo top-up so the account can afford
		// promotions right away. Every balance change goes through the
		// ledger so balance == sum(amounts) holds for seeded data too.
		balance := 0
		balance, err := credit(db, account.ID, balance, signupBonus, models.TransactionTypeSignupBonus, "Signup bonus")
		if err != nil {
			return err
		}
		balance, err = credit(db, account.ID, balance, demoTopUp, models.TransactionTypeAdminAdjustment, "Demo top-up")
		if err != nil {
			return err
		}

		promotionsCount := 1 + (len(accountIDs) % 3)
		log.Info("Creating %d promotions for account %s", promotionsCount, account.Username)
		for i := 0; i < promotionsCount; i++ {
			balance, err = createDemoPromotion(db, s3Client, httpClient, account.ID, account.Username, balance, i, log)
			if err != nil {
				log.Error("Failed to create promotion %d for account %s: %v", i+1, account.Username, err)
				continue
			}
			time.Sleep(200 * time.Millisecond)
		}

		if err := db.Model(&models.Account{}).Where("id = ?", account.ID).Update("balance", balance).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
	}

	log.Info("Created %d test accounts", len(accountIDs))
	return nil
}

func credit(db *gorm.DB, accountID string, balance, amount int, txType models.TransactionType, description string) (int, error) {
	transaction := &models.Transaction{
		AccountID:     accountID,
		Amount:        amount,
		Type:          txType,
		Description:   description,
		BalanceBefore: balance,
		BalanceAfter:  balance + amount,
	}
	if err := transaction.BeforeCreate(nil); err != nil {
		return balance, fmt.Errorf("failed to generate transaction ID: %w", err)
	}
	if err := db.Create(transaction).Error; err != nil {
		return balance, fmt.Errorf("failed to create transaction: %w", err)
	}
	return balance + amount, nil
}

func createDemoPromotion(db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, accountID, username string, balance, index int, log *logger.Logger) (int, error) {
	duration := 60 + index*60
	targetViews := 50 + index*50
	cost := ceilDiv(targetViews*duration, 40)
	rewardPerView := ceilDiv(duration, 40)

	if cost > balance {
		return balance, fmt.Errorf("demo account balance too low for promotion (cost %d, balance %d)", cost, balance)
	}

	promotion := &models.Promotion{
		OwnerAccountID:    accountID,
		VideoID:           fmt.Sprintf("seedvid%d%s", index, accountID[:8]),
		Title:             fmt.Sprintf("Demo video #%d by %s", index+1, username),
		DurationSeconds:   duration,
		CoinCost:          cost,
		CoinRewardPerView: rewardPerView,
		TargetViews:       targetViews,
		Status:            models.PromotionStatusPending,
		HoldExpiresAt:     time.Now().Add(holdPeriod),
	}
	if err := promotion.BeforeCreate(nil); err != nil {
		return balance, fmt.Errorf("failed to generate promotion ID: %w", err)
	}

	if url, err := uploadDemoThumbnail(s3Client, httpClient, promotion.ID, username, log); err != nil {
		log.Warn("Skipping thumbnail for promotion %s: %v", promotion.ID, err)
	} else {
		promotion.ThumbnailURL = url
	}

	balance, err := credit(db, accountID, balance, -cost, models.TransactionTypeVideoPromotion, "Video promotion: "+promotion.Title)
	if err != nil {
		return balance, err
	}

	if err := db.Create(promotion).Error; err != nil {
		return balance, fmt.Errorf("failed to create promotion: %w", err)
	}

	log.Info("Created promotion: %s (%d coins)", promotion.Title, cost)
	return balance, nil
}

func uploadDemoThumbnail(s3Client *s3.Client, httpClient *http.Client, promotionID, username string, log *logger.Logger) (string, error) {
	cataasURL := fmt.Sprintf("https://cataas.com/cat/says/Promo by %s", username)

	resp, err := httpClient.Get(cataasURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch placeholder image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("thumbnails/%s.jpg", promotionID)
	url, err := s3Client.UploadFile(fileKey, bytes.NewReader(imageData), "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	log.Info("Uploaded thumbnail: %s", url)
	return url, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
