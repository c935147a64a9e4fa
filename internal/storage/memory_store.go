package storage

import (
	"sync"

	"github.com/julianstephens/habitflow/internal/constants"
)

// MemoryStore keeps the token in process memory. Used by the "memory" backend and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryStore) Name() string {
	return string(constants.BackendMemory)
}
