package storage

import (
	"context"
	"fmt"
	"image"
	"io"
	"sort"
	"strings"
	"sync"
)

// Memory keeps assets and creatives in process memory. Used by tests and as
// a scratch backend when no durable storage is configured.
type Memory struct {
	mu      sync.RWMutex
	assets  map[string]image.Image
	outputs map[string]image.Image
}

func NewMemory() *Memory {
	return &Memory{
		assets:  make(map[string]image.Image),
		outputs: make(map[string]image.Image),
	}
}

// PutAsset seeds an asset under a key.
func (m *Memory) PutAsset(key string, img image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[key] = img
}

func (m *Memory) FindAsset(_ context.Context, key string) (image.Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	img, ok := m.assets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}
	return img, nil
}

func (m *Memory) Store(_ context.Context, pathKey string, img image.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs[pathKey] = img
	return pathKey, nil
}

func (m *Memory) List(_ context.Context, campaignID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.outputs {
		if strings.HasPrefix(k, campaignID+"/") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) SaveAsset(_ context.Context, key, filename string, r io.Reader) (string, error) {
	// Asset uploads are image files; keep only the decoded image.
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode asset %s: %w", filename, err)
	}
	m.PutAsset(key, img)
	return key + "/" + filename, nil
}
