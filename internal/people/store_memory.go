package people

import (
	"context"
	"sort"
	"sync"

	"onboard/pkg/sentinel"
)

// InMemoryStore keeps the directory in memory for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	people map[string]Person
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{people: make(map[string]Person)}
}

func (s *InMemoryStore) Upsert(_ context.Context, person Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people[person.Email] = person
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if person, ok := s.people[email]; ok {
		return &person, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context, personType Type) ([]Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Person
	for _, p := range s.people {
		if personType == "" || p.Type == personType {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
