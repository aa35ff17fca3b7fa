package usecase

import (
	"testing"

	"vidgro/pkg/logger"
	"vidgro/pkg/queue"

	"github.com/stretchr/testify/assert"
)

func TestHandleEvent_MissingAccountID(t *testing.T) {
	uc := NewNotificationUseCase(nil, nil, logger.New())

	// Dropped silently, never touches Redis.
	err := uc.HandleEvent(queue.Event{Type: queue.EventTransactionCreated})
	assert.NoError(t, err)
}

func TestHandleEvent_UnknownType(t *testing.T) {
	uc := NewNotificationUseCase(nil, nil, logger.New())

	err := uc.HandleEvent(queue.Event{Type: "something.else", AccountID: "account-123"})
	assert.NoError(t, err)
}

func TestTransactionMessage(t *testing.T) {
	// JSON numbers decode as float64.
	assert.Equal(t, "You received 500 coins", transactionMessage(map[string]interface{}{"amount": float64(500)}))
	assert.Equal(t, "You spent 600 coins", transactionMessage(map[string]interface{}{"amount": float64(-600)}))
}

func TestViewMessage(t *testing.T) {
	credited := map[string]interface{}{"completed": true, "coins_earned": float64(3)}
	assert.Equal(t, "You earned 3 coins for watching a video", viewMessage(credited))

	burned := map[string]interface{}{"completed": false}
	assert.Equal(t, "A watch session ended below the completion threshold", viewMessage(burned))
}

func TestQueueDepth_NoClient(t *testing.T) {
	uc := NewNotificationUseCase(nil, nil, logger.New())

	_, err := uc.QueueDepth()
	assert.Error(t, err)
}
