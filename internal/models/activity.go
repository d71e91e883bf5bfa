package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions recorded for remote mutations.
const (
	ActionAlunoCreated = "aluno.created"
	ActionAlunoUpdated = "aluno.updated"
	ActionAlunoDeleted = "aluno.deleted"
)

// Activity outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ActivityLog captures the outcome of each mutation sent to the remote API.
type ActivityLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	SessionID string            `gorm:"size:64;index;not null" json:"session_id"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	AlunoID   string            `gorm:"size:64" json:"aluno_id"`
	Outcome   string            `gorm:"size:16;not null" json:"outcome"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
