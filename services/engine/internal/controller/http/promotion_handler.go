package http

import (
	"net/http"

	"vidgro/pkg/logger"
	"vidgro/services/engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotionUseCase usecase.PromotionUseCase
	logger           *logger.Logger
}

func NewPromotionHandler(promotionUseCase usecase.PromotionUseCase, logger *logger.Logger) *PromotionHandler {
	return &PromotionHandler{
		promotionUseCase: promotionUseCase,
		logger:           logger,
	}
}

type CreatePromotionRequest struct {
	VideoID         string `json:"video_id" binding:"required,max=32"`
	Title           string `json:"title" binding:"required,max=200"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=10,max=600"`
	TargetViews     int    `json:"target_views" binding:"required,min=1,max=1000"`
}

// CreatePromotion godoc
// @Summary      Create promotion
// @Description  Pay coins up front to have a video watched by other accounts
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePromotionRequest true "Promotion data"
// @Success      201  {object}  entity.Promotion
// @Failure      402  {object}  map[string]string
// @Router       /promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promotion, err := h.promotionUseCase.CreatePromotion(ownerID, req.VideoID, req.Title, req.DurationSeconds, req.TargetViews)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, promotion)
}

// ListPromotions godoc
// @Summary      List own promotions
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of promotions"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /promotions [get]
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	ownerID := c.GetString("user_id")
	limit, offset := pagination(c, 20, 100)

	promotions, err := h.promotionUseCase.ListPromotions(ownerID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list promotions: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotions": promotions, "count": len(promotions)})
}

// GetPromotion godoc
// @Summary      Get promotion
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Success      200  {object}  entity.Promotion
// @Failure      404  {object}  map[string]string
// @Router       /promotions/{id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	promotion, err := h.promotionUseCase.GetPromotion(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, promotion)
}

// CancelPromotion godoc
// @Summary      Cancel promotion
// @Description  Cancel an own promotion; refunds 100% inside the hold window, 80% after
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /promotions/{id} [delete]
func (h *PromotionHandler) CancelPromotion(c *gin.Context) {
	ownerID := c.GetString("user_id")
	promotionID := c.Param("id")

	refund, err := h.promotionUseCase.CancelPromotion(promotionID, ownerID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion cancelled",
		"refund":  refund,
	})
}

// UploadThumbnail godoc
// @Summary      Upload thumbnail
// @Description  Store a thumbnail image for an own promotion
// @Tags         promotions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Param        thumbnail formData file true "Thumbnail image"
// @Success      200  {object}  entity.Promotion
// @Router       /promotions/{id}/thumbnail [post]
func (h *PromotionHandler) UploadThumbnail(c *gin.Context) {
	ownerID := c.GetString("user_id")
	promotionID := c.Param("id")

	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thumbnail file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read thumbnail"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	promotion, err := h.promotionUseCase.UploadThumbnail(promotionID, ownerID, file, contentType)
	if err != nil {
		h.logger.Error("Failed to upload thumbnail: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, promotion)
}
