package http

import (
	"net/http"

	"vidgro/pkg/logger"
	"vidgro/services/engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	viewUseCase usecase.ViewUseCase
	logger      *logger.Logger
}

func NewVideoHandler(viewUseCase usecase.ViewUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{
		viewUseCase: viewUseCase,
		logger:      logger,
	}
}

// NextVideo godoc
// @Summary      Next video to watch
// @Description  Pick the next watchable promotion for the authenticated viewer. An empty queue returns 200 with a null video.
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /videos/next [get]
func (h *VideoHandler) NextVideo(c *gin.Context) {
	viewerID := c.GetString("user_id")

	promotion, err := h.viewUseCase.NextVideo(viewerID)
	if err != nil {
		h.logger.Error("Failed to get next video: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if promotion == nil {
		// Empty queue is not an error; the client just shows nothing to watch.
		c.JSON(http.StatusOK, gin.H{"video": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": promotion})
}

type CompleteViewRequest struct {
	WatchedDurationSeconds int `json:"watched_duration_seconds" binding:"min=0"`
}

// CompleteView godoc
// @Summary      Report watch completion
// @Description  Settle a watch session: credits the viewer when at least 80% of the video was watched
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion ID"
// @Param        request body CompleteViewRequest true "Watch data"
// @Success      200  {object}  entity.Settlement
// @Failure      409  {object}  map[string]string
// @Router       /videos/{id}/complete [post]
func (h *VideoHandler) CompleteView(c *gin.Context) {
	viewerID := c.GetString("user_id")
	promotionID := c.Param("id")

	var req CompleteViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := h.viewUseCase.CompleteView(viewerID, promotionID, req.WatchedDurationSeconds)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settlement)
}

// ViewHistory godoc
// @Summary      Watch history
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of records"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /videos/history [get]
func (h *VideoHandler) ViewHistory(c *gin.Context) {
	viewerID := c.GetString("user_id")
	limit, offset := pagination(c, 50, 100)

	records, err := h.viewUseCase.GetViewHistory(viewerID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get view history: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"views": records, "count": len(records)})
}
