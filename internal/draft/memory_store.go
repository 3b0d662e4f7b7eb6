package draft

import (
	"context"
	"sync"

	"elegance-storefront/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]domain.DraftProduct
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts: make(map[string]domain.DraftProduct),
	}
}

func (s *MemoryStore) Create(_ context.Context) (string, *Manager, error) {
	id := uuid.New().String()
	m := NewManager()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[id] = m.Draft()
	return id, m, nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Manager, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return Restore(d), nil
}

func (s *MemoryStore) Save(_ context.Context, id string, m *Manager) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return ErrSessionNotFound
	}
	s.drafts[id] = m.Draft()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.drafts, id)
	return nil
}
