package flow

import (
	"context"
	"sync"
)

// MemoryStore keeps drafts in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[int64]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts: make(map[int64]*State),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.drafts[userID]
	if !ok {
		return nil, nil
	}
	return state.clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, userID int64, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[userID] = state.clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
	return nil
}
