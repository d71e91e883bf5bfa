package session

import (
	"context"
	"errors"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

// ErrEmptyID is returned when a store operation receives a blank session id.
var ErrEmptyID = errors.New("session id must not be empty")

// Store keeps the form state of each browser session.
// Loading an unknown id yields a zero FormState.
type Store interface {
	Load(ctx context.Context, id string) (models.FormState, error)
	Save(ctx context.Context, id string, state models.FormState) error
}
