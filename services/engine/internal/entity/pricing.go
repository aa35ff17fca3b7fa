package entity

import "time"

// Business constants for the coin economy. The same numbers are shown by the
// mobile client, but the values here are authoritative: client-computed costs
// are never trusted.
const (
	SignupBonusCoins = 100

	ReferralBonusReferrer = 500
	ReferralBonusReferred = 200

	MinDurationSeconds = 10
	MaxDurationSeconds = 600
	MinTargetViews     = 1
	MaxTargetViews     = 1000

	// HoldPeriod is the delay between promotion creation and queue
	// eligibility. Cancelling inside it refunds the full cost.
	HoldPeriod = 10 * time.Minute

	// LateCancelRefundPercent applies once the hold window has elapsed;
	// the remainder is forfeited as the platform fee.
	LateCancelRefundPercent = 80
)

// ComputePromotionCost returns the base cost, the VIP discount and the total
// charged for a promotion: base = ceil(targetViews * durationSeconds / 100 * 2.5),
// with a 10% discount (rounded up) for active VIP accounts.
func ComputePromotionCost(targetViews, durationSeconds int, vip bool) (base, discount, total int) {
	// views * duration / 100 * 2.5 == views * duration / 40
	base = ceilDiv(targetViews*durationSeconds, 40)
	if vip {
		discount = ceilDiv(base, 10)
	}
	return base, discount, base - discount
}

// RewardPerView is what a viewer earns for one completed watch: the per-view
// base rate of the cost formula, ceil(durationSeconds / 40).
func RewardPerView(durationSeconds int) int {
	return ceilDiv(durationSeconds, 40)
}

// RefundAmount implements the cancellation policy: a full refund inside the
// hold window, 80% of the original cost after it.
func RefundAmount(coinCost int, holdExpiresAt, now time.Time) int {
	if now.Before(holdExpiresAt) {
		return coinCost
	}
	return coinCost * LateCancelRefundPercent / 100
}

// MeetsWatchThreshold reports whether a watch session counts as completed:
// at least 80% of the declared duration.
func MeetsWatchThreshold(durationSeconds, watchedSeconds int) bool {
	return watchedSeconds*5 >= durationSeconds*4
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
