package dto

import (
	"time"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityListRequest filters the activity log.
type ActivityListRequest struct {
	Page      int    `validate:"gte=0"`
	PageSize  int    `validate:"gte=0,lte=100"`
	SessionID string `validate:"omitempty,max=64"`
	Action    string `validate:"omitempty,oneof=aluno.created aluno.updated aluno.deleted"`
	Outcome   string `validate:"omitempty,oneof=success failure"`
}

// ActivityResponse is one activity log entry.
type ActivityResponse struct {
	ID        uint                   `json:"id"`
	SessionID string                 `json:"session_id"`
	Action    string                 `json:"action"`
	AlunoID   string                 `json:"aluno_id,omitempty"`
	Outcome   string                 `json:"outcome"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// ActivityListResponse wraps a page of activity entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewActivityResponse converts a model to its DTO.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	var metadata map[string]interface{}
	if len(entry.Metadata) > 0 {
		metadata = map[string]interface{}(entry.Metadata)
	}
	return ActivityResponse{
		ID:        entry.ID,
		SessionID: entry.SessionID,
		Action:    entry.Action,
		AlunoID:   entry.AlunoID,
		Outcome:   entry.Outcome,
		Metadata:  metadata,
		CreatedAt: entry.CreatedAt,
	}
}
