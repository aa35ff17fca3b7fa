package http

import (
	"errors"
	"net/http"

	"vidgro/services/engine/internal/entity"
)

// statusFor maps business-rule errors to HTTP status codes. Anything not in
// the taxonomy is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, entity.ErrAccountNotFound),
		errors.Is(err, entity.ErrPromotionNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrAlreadyViewed),
		errors.Is(err, entity.ErrSelfView),
		errors.Is(err, entity.ErrPromotionNotActive),
		errors.Is(err, entity.ErrPromotionCompleted),
		errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, entity.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrInvalidReferral):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
