package entity

import "time"

type ViewRecord struct {
	ID                     string    `json:"id"`
	PromotionID            string    `json:"promotion_id"`
	ViewerAccountID        string    `json:"viewer_account_id"`
	WatchedDurationSeconds int       `json:"watched_duration_seconds"`
	Completed              bool      `json:"completed"`
	CoinsEarned            int       `json:"coins_earned"`
	CreatedAt              time.Time `json:"created_at"`
}

// Settlement is the outcome of a watch-completion report.
type Settlement struct {
	Completed          bool `json:"completed"`
	CoinsEarned        int  `json:"coins_earned"`
	ViewsCount         int  `json:"views_count"`
	PromotionCompleted bool `json:"promotion_completed"`
}
