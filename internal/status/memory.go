package status

import (
	"context"
	"sync"

	"github.com/creative-automation/backend/internal/models"
)

// MemoryStore keeps campaign state in a mutex-guarded map. The default when
// no Redis URL is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]*models.CampaignResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{campaigns: make(map[string]*models.CampaignResult)}
}

func (s *MemoryStore) Create(_ context.Context, result *models.CampaignResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[result.CampaignID] = result.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, campaignID string) (*models.CampaignResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.campaigns[campaignID]
	if !ok {
		return nil, ErrNotFound
	}
	return result.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, campaignID string, fn func(*models.CampaignResult)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.campaigns[campaignID]
	if !ok {
		return ErrNotFound
	}
	fn(result)
	return nil
}
