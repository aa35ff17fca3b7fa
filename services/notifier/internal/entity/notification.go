package entity

// Notification is a message shown in an account's activity feed.
type Notification struct {
	AccountID string                 `json:"account_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt string                 `json:"created_at"`
}
