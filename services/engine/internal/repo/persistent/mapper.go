package persistent

import (
	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/model"
)

func ToAccountEntity(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		Password:     m.Password,
		Balance:      m.Balance,
		IsVIP:        m.IsVIP,
		VIPExpiresAt: m.VIPExpiresAt,
		ReferralCode: m.ReferralCode,
		ReferredBy:   m.ReferredBy,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:            m.ID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		Type:          entity.TransactionType(m.Type),
		Description:   m.Description,
		ReferenceID:   m.ReferenceID,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		CreatedAt:     m.CreatedAt,
	}
}

func ToPromotionEntity(m *model.PromotionModel) *entity.Promotion {
	if m == nil {
		return nil
	}

	return &entity.Promotion{
		ID:                m.ID,
		OwnerAccountID:    m.OwnerAccountID,
		VideoID:           m.VideoID,
		Title:             m.Title,
		ThumbnailURL:      m.ThumbnailURL,
		DurationSeconds:   m.DurationSeconds,
		CoinCost:          m.CoinCost,
		CoinRewardPerView: m.CoinRewardPerView,
		TargetViews:       m.TargetViews,
		ViewsCount:        m.ViewsCount,
		Status:            entity.PromotionStatus(m.Status),
		HoldExpiresAt:     m.HoldExpiresAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func ToViewRecordEntity(m *model.ViewRecordModel) *entity.ViewRecord {
	if m == nil {
		return nil
	}

	return &entity.ViewRecord{
		ID:                     m.ID,
		PromotionID:            m.PromotionID,
		ViewerAccountID:        m.ViewerAccountID,
		WatchedDurationSeconds: m.WatchedDurationSeconds,
		Completed:              m.Completed,
		CoinsEarned:            m.CoinsEarned,
		CreatedAt:              m.CreatedAt,
	}
}
