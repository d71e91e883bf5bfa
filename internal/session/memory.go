package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

const (
	defaultMemoryTTL = 24 * time.Hour
	minSweepInterval = time.Minute
	maxSweepInterval = 10 * time.Minute
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu        sync.RWMutex
	states    map[string]memoryEntry
	ttl       time.Duration
	sweepEach time.Duration
	nextSweep time.Time
	now       func() time.Time
}

// NewMemoryStore keeps states in process memory. States are copied on save and load and expire
// ttl after their last save; expired entries are swept on later saves.
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = defaultMemoryTTL
	}

	sweepEach := ttl / 2
	if sweepEach < minSweepInterval {
		sweepEach = minSweepInterval
	}
	if sweepEach > maxSweepInterval {
		sweepEach = maxSweepInterval
	}

	return &memoryStore{
		states:    make(map[string]memoryEntry),
		ttl:       ttl,
		sweepEach: sweepEach,
		now:       time.Now,
	}
}

func (s *memoryStore) Load(_ context.Context, id string) (models.FormState, error) {
	if id == "" {
		return models.FormState{}, ErrEmptyID
	}

	s.mu.RLock()
	entry, ok := s.states[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(entry.expiresAt) {
		return models.FormState{}, nil
	}

	var state models.FormState
	if err := json.Unmarshal(entry.raw, &state); err != nil {
		return models.FormState{}, err
	}
	return state, nil
}

func (s *memoryStore) Save(_ context.Context, id string, state models.FormState) error {
	if id == "" {
		return ErrEmptyID
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[id] = memoryEntry{raw: raw, expiresAt: now.Add(s.ttl)}
	if !now.Before(s.nextSweep) {
		s.sweepLocked(now)
		s.nextSweep = now.Add(s.sweepEach)
	}
	return nil
}

func (s *memoryStore) sweepLocked(now time.Time) {
	for id, entry := range s.states {
		if !now.Before(entry.expiresAt) {
			delete(s.states, id)
		}
	}
}

func (s *memoryStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
