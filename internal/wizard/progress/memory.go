// internal/wizard/progress/memory.go
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"carrier-portal/internal/models"
)

// MemoryStore is the in-process Store used by tests and ephemeral sessions.
// Records are held serialized so Get always returns an independent copy.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.WizardProgress, error) {
	s.mu.RLock()
	raw, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var p models.WizardProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("corrupt progress record %s: %w", key, err)
	}
	return &p, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, p *models.WizardProgress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress record: %w", err)
	}

	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
