package entity

import "time"

type PromotionStatus string

const (
	PromotionStatusPending   PromotionStatus = "pending"
	PromotionStatusActive    PromotionStatus = "active"
	PromotionStatusCompleted PromotionStatus = "completed"
	PromotionStatusCancelled PromotionStatus = "cancelled"
)

type Promotion struct {
	ID                string          `json:"id"`
	OwnerAccountID    string          `json:"owner_account_id"`
	VideoID           string          `json:"video_id"`
	Title             string          `json:"title"`
	ThumbnailURL      string          `json:"thumbnail_url,omitempty"`
	DurationSeconds   int             `json:"duration_seconds"`
	CoinCost          int             `json:"coin_cost"`
	CoinRewardPerView int             `json:"coin_reward_per_view"`
	TargetViews       int             `json:"target_views"`
	ViewsCount        int             `json:"views_count"`
	Status            PromotionStatus `json:"status"`
	HoldExpiresAt     time.Time       `json:"hold_expires_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// EffectiveStatus derives the logical status from the stored one: a pending
// promotion whose hold window has elapsed counts as active even before any
// writer has materialized the transition. All readers must go through this
// instead of comparing Status directly.
func (p *Promotion) EffectiveStatus(now time.Time) PromotionStatus {
	if p.Status == PromotionStatusPending && !now.Before(p.HoldExpiresAt) {
		return PromotionStatusActive
	}
	return p.Status
}

// InHoldWindow reports whether cancellation still refunds the full cost.
func (p *Promotion) InHoldWindow(now time.Time) bool {
	return now.Before(p.HoldExpiresAt)
}
