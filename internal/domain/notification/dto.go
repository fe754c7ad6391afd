package notification

import "time"

// CreateNotificationRequest represents a request to emit a notification
type CreateNotificationRequest struct {
	EmployeeID string
	Type       NotificationType
	Title      string
	Message    string
	Data       map[string]interface{}
}

// NotificationResponse is the payload pushed to SSE subscribers
type NotificationResponse struct {
	ID         string                 `json:"id"`
	EmployeeID string                 `json:"employee_id"`
	Type       NotificationType       `json:"type"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

func NewNotificationResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		EmployeeID: n.EmployeeID,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		Data:       n.Data,
		CreatedAt:  n.CreatedAt,
	}
}
