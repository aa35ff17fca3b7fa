package entity

import "time"

type Account struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Password     string     `json:"-"`
	Balance      int        `json:"balance"`
	IsVIP        bool       `json:"is_vip"`
	VIPExpiresAt *time.Time `json:"vip_expires_at,omitempty"`
	ReferralCode string     `json:"referral_code"`
	ReferredBy   *string    `json:"referred_by,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// VIPActive reports whether the account's VIP tier applies at the given
// moment. A nil expiry means the tier does not lapse.
func (a *Account) VIPActive(now time.Time) bool {
	if !a.IsVIP {
		return false
	}
	return a.VIPExpiresAt == nil || a.VIPExpiresAt.After(now)
}
