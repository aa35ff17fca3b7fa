package http

import (
	"net/http"
	"time"

	"vidgro/pkg/logger"
	"vidgro/services/engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Username     string `json:"username" binding:"required,min=3,max=32"`
	Password     string `json:"password" binding:"required,min=8"`
	ReferralCode string `json:"referral_code"`
}

// Register godoc
// @Summary      Register account
// @Description  Create an account with the signup bonus, optionally applying a referral code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.authUseCase.Register(req.Email, req.Username, req.Password, req.ReferralCode)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"account": account, "token": token})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Login
// @Description  Authenticate and receive a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := h.authUseCase.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account, "token": token})
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Account
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID := c.GetString("user_id")

	account, err := h.authUseCase.GetAccount(accountID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

type ActivateVIPRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

// ActivateVIP godoc
// @Summary      Activate VIP
// @Description  Record a VIP purchase validated by the payment provider
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ActivateVIPRequest true "VIP expiry"
// @Success      200  {object}  entity.Account
// @Router       /vip/activate [post]
func (h *AuthHandler) ActivateVIP(c *gin.Context) {
	accountID := c.GetString("user_id")

	var req ActivateVIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.authUseCase.ActivateVIP(accountID, req.ExpiresAt)
	if err != nil {
		h.logger.Error("Failed to activate VIP: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

// CloseAccount godoc
// @Summary      Close account
// @Description  Soft-close the authenticated account; the ledger history is retained
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /me [delete]
func (h *AuthHandler) CloseAccount(c *gin.Context) {
	accountID := c.GetString("user_id")

	if err := h.authUseCase.CloseAccount(accountID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account closed"})
}
