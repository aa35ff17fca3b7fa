package entity

import "errors"

// Business-rule errors surfaced to API callers. Handlers map these to HTTP
// status codes with errors.Is.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPromotionNotFound  = errors.New("promotion not found")
	ErrAlreadyViewed      = errors.New("video already viewed")
	ErrSelfView           = errors.New("cannot watch your own video")
	ErrPromotionNotActive = errors.New("promotion is not active")
	ErrPromotionCompleted = errors.New("promotion already completed")
	ErrNotOwner           = errors.New("not the promotion owner")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidReferral    = errors.New("invalid referral code")
)
