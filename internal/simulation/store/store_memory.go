package store

import (
	"context"
	"sort"
	"sync"

	"crediris/internal/simulation/models"
)

// InMemoryStore keeps records in a map for tests and for running without a
// database. It intentionally favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.SimulationRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]models.SimulationRecord)}
}

func (s *InMemoryStore) Save(_ context.Context, record models.SimulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (models.SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[id]; ok {
		return record, nil
	}
	return models.SimulationRecord{}, ErrNotFound
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]models.SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SimulationRecord
	for _, record := range s.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
