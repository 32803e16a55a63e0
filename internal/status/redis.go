package status

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/creative-automation/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "campaign:"
	resultTTL = 24 * time.Hour
)

// RedisStore keeps campaign state as JSON values in Redis so status polling
// survives process restarts and can be served by multiple API instances.
// Per-key updates are serialized through in-process mutexes; two processes
// updating the same campaign id concurrently are not protected, matching the
// documented single-writer-per-run model.
type RedisStore struct {
	client *redis.Client
	log    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		log:    log,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *RedisStore) keyLock(campaignID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[campaignID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[campaignID] = l
	}
	return l
}

func (s *RedisStore) write(ctx context.Context, result *models.CampaignResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign result: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+result.CampaignID, data, resultTTL).Err()
}

func (s *RedisStore) read(ctx context.Context, campaignID string) (*models.CampaignResult, error) {
	data, err := s.client.Get(ctx, keyPrefix+campaignID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign result: %w", err)
	}
	var result models.CampaignResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign result: %w", err)
	}
	return &result, nil
}

func (s *RedisStore) Create(ctx context.Context, result *models.CampaignResult) error {
	return s.write(ctx, result)
}

func (s *RedisStore) Get(ctx context.Context, campaignID string) (*models.CampaignResult, error) {
	return s.read(ctx, campaignID)
}

func (s *RedisStore) Update(ctx context.Context, campaignID string, fn func(*models.CampaignResult)) error {
	lock := s.keyLock(campaignID)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.read(ctx, campaignID)
	if err != nil {
		return err
	}
	fn(result)
	return s.write(ctx, result)
}
