package catalog

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used by tests and local development.
type MemStore struct {
	mu      sync.RWMutex
	courses []Course
}

func NewMemStore(seed ...Course) *MemStore {
	return &MemStore{courses: append([]Course{}, seed...)}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) LoadAll(ctx context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Course, len(s.courses))
	copy(out, s.courses)
	return out, nil
}

func (s *MemStore) Append(ctx context.Context, c Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = append(s.courses, c)
	return nil
}

func (s *MemStore) FindByCode(ctx context.Context, code string) (Course, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.courses {
		if c.Code == code {
			return c, true, nil
		}
	}
	return Course{}, false, nil
}
