package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

const defaultKeyPrefix = "diario:session:"

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore stores JSON-encoded states under prefix+id. Every save refreshes the ttl;
// a zero ttl keeps keys forever.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) Store {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *redisStore) key(id string) string {
	return s.prefix + id
}

func (s *redisStore) Load(ctx context.Context, id string) (models.FormState, error) {
	if id == "" {
		return models.FormState{}, ErrEmptyID
	}

	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.FormState{}, nil
		}
		return models.FormState{}, fmt.Errorf("load session: %w", err)
	}

	var state models.FormState
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.FormState{}, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

func (s *redisStore) Save(ctx context.Context, id string, state models.FormState) error {
	if id == "" {
		return ErrEmptyID
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
