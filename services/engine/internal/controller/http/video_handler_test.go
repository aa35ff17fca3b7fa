package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidgro/pkg/logger"
	"vidgro/services/engine/internal/entity"
	"vidgro/services/engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockViewUseCase is a mock implementation of ViewUseCase
type MockViewUseCase struct {
	mock.Mock
}

func (m *MockViewUseCase) NextVideo(viewerID string) (*entity.Promotion, error) {
	args := m.Called(viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Promotion), args.Error(1)
}

func (m *MockViewUseCase) CompleteView(viewerID, promotionID string, watchedSeconds int) (*entity.Settlement, error) {
	args := m.Called(viewerID, promotionID, watchedSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settlement), args.Error(1)
}

func (m *MockViewUseCase) GetViewHistory(viewerID string, limit, offset int) ([]*entity.ViewRecord, error) {
	args := m.Called(viewerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ViewRecord), args.Error(1)
}

var _ usecase.ViewUseCase = (*MockViewUseCase)(nil)

func TestNextVideo_Success(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/videos/next", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.NextVideo(c)
	})

	mockPromotion := &entity.Promotion{
		ID:                "promo-123",
		OwnerAccountID:    "owner-456",
		VideoID:           "dQw4w9WgXcQ",
		Title:             "Watch me",
		DurationSeconds:   120,
		CoinRewardPerView: 3,
		Status:            entity.PromotionStatusActive,
	}

	mockUseCase.On("NextVideo", "viewer-123").Return(mockPromotion, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/next", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	video := response["video"].(map[string]interface{})
	assert.Equal(t, "promo-123", video["id"])
	assert.Equal(t, float64(3), video["coin_reward_per_view"])

	mockUseCase.AssertExpectations(t)
}

func TestNextVideo_EmptyQueue(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/videos/next", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.NextVideo(c)
	})

	mockUseCase.On("NextVideo", "viewer-123").Return(nil, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/next", nil)

	router.ServeHTTP(w, req)

	// An empty queue is still a 200, with an explicit null video.
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Nil(t, response["video"])

	mockUseCase.AssertExpectations(t)
}

func TestCompleteView_Credited(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/videos/:id/complete", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.CompleteView(c)
	})

	settlement := &entity.Settlement{
		Completed:          true,
		CoinsEarned:        3,
		ViewsCount:         42,
		PromotionCompleted: false,
	}

	mockUseCase.On("CompleteView", "viewer-123", "promo-123", 100).Return(settlement, nil)

	body := `{"watched_duration_seconds":100}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/promo-123/complete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Settlement
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Completed)
	assert.Equal(t, 3, response.CoinsEarned)

	mockUseCase.AssertExpectations(t)
}

func TestCompleteView_BelowThreshold(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/videos/:id/complete", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.CompleteView(c)
	})

	settlement := &entity.Settlement{
		Completed:   false,
		CoinsEarned: 0,
	}

	mockUseCase.On("CompleteView", "viewer-123", "promo-123", 30).Return(settlement, nil)

	body := `{"watched_duration_seconds":30}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/promo-123/complete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Settlement
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response.Completed)
	assert.Equal(t, 0, response.CoinsEarned)

	mockUseCase.AssertExpectations(t)
}

func TestCompleteView_AlreadyViewed(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/videos/:id/complete", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.CompleteView(c)
	})

	mockUseCase.On("CompleteView", "viewer-123", "promo-123", 100).Return(nil, entity.ErrAlreadyViewed)

	body := `{"watched_duration_seconds":100}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/promo-123/complete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCompleteView_SelfView(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/videos/:id/complete", func(c *gin.Context) {
		c.Set("user_id", "owner-123")
		handler.CompleteView(c)
	})

	mockUseCase.On("CompleteView", "owner-123", "promo-123", 100).Return(nil, entity.ErrSelfView)

	body := `{"watched_duration_seconds":100}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/promo-123/complete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCompleteView_NegativeDuration(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/videos/:id/complete", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.CompleteView(c)
	})

	body := `{"watched_duration_seconds":-5}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/videos/promo-123/complete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CompleteView", mock.Anything, mock.Anything, mock.Anything)
}

func TestViewHistory_Success(t *testing.T) {
	mockUseCase := new(MockViewUseCase)
	logger := logger.New()
	handler := NewVideoHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/videos/history", func(c *gin.Context) {
		c.Set("user_id", "viewer-123")
		handler.ViewHistory(c)
	})

	mockRecords := []*entity.ViewRecord{
		{ID: "view-1", PromotionID: "promo-1", ViewerAccountID: "viewer-123", Completed: true, CoinsEarned: 3},
		{ID: "view-2", PromotionID: "promo-2", ViewerAccountID: "viewer-123", Completed: false, CoinsEarned: 0},
	}

	mockUseCase.On("GetViewHistory", "viewer-123", 50, 0).Return(mockRecords, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/videos/history", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	views := response["views"].([]interface{})
	assert.Equal(t, 2, len(views))

	mockUseCase.AssertExpectations(t)
}
