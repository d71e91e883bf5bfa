package dto

import (
	"time"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

// NotificationResponse is a toast delivered over the notification streams.
type NotificationResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationResponse converts a toast bound to a session.
func NewNotificationResponse(sessionID string, toast models.Toast) NotificationResponse {
	return NotificationResponse{
		ID:        toast.ID,
		SessionID: sessionID,
		Level:     toast.Level,
		Message:   toast.Message,
		CreatedAt: toast.CreatedAt,
	}
}
