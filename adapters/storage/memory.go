package storage

import (
	"context"
	"sync"

	"cloudguide/internal/errors"
)

// MemoryStore is an in-memory storage backend
type MemoryStore struct {
	analyses map[string]*SavedAnalysis
	mu       sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]*SavedAnalysis),
	}
}

func (s *MemoryStore) Save(ctx context.Context, a *SavedAnalysis) error {
	if err := prepare(a); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *a
	s.analyses[a.ID] = &stored
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*SavedAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analyses[id]
	if !ok {
		return nil, notFound(id)
	}
	out := *a
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context, filter ListFilter) ([]*SavedAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*SavedAnalysis{}
	for _, a := range s.analyses {
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		out := *a
		results = append(results, &out)
	}

	sortNewest(results)
	return paginate(results, filter), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, patch Patch) (*SavedAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.analyses[id]
	if !ok {
		return nil, notFound(id)
	}
	updated := *a
	if err := patch.apply(&updated); err != nil {
		return nil, err
	}
	s.analyses[id] = &updated

	out := updated
	return &out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.analyses[id]
	if !ok || a.UserID != userID {
		return errors.Newf(errors.TypeNotFound, "analysis not found or unauthorized: %s", id)
	}
	delete(s.analyses, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
