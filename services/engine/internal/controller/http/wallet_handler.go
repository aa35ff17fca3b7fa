package http

import (
	"net/http"
	"strconv"

	"vidgro/pkg/logger"
	"vidgro/services/engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	logger        *logger.Logger
}

func NewWalletHandler(ledgerUseCase usecase.LedgerUseCase, logger *logger.Logger) *WalletHandler {
	return &WalletHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

// GetWallet godoc
// @Summary      Get balance
// @Description  Current coin balance for the authenticated account
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	accountID := c.GetString("user_id")

	balance, err := h.ledgerUseCase.GetBalance(accountID)
	if err != nil {
		h.logger.Error("Failed to get balance: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_id": accountID, "balance": balance})
}

// GetTransactions godoc
// @Summary      Transaction history
// @Description  Ledger entries for the authenticated account, newest first
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of transactions"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	accountID := c.GetString("user_id")
	limit, offset := pagination(c, 50, 100)

	transactions, err := h.ledgerUseCase.GetTransactions(accountID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get transactions: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

func pagination(c *gin.Context, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= maxLimit {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
