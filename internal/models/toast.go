package models

import "time"

// Toast levels.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a transient notification waiting to be shown to a session.
type Toast struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
