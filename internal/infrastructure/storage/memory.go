package storage

import (
	"context"
	"errors"
	"sync"

	studioapp "github.com/teeforge/backend/internal/application/studio"
)

var _ studioapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps design artifacts in memory. It backs
// development runs and tests where no S3-compatible store is available.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	baseURL string
}

// NewMemoryObjectStorage creates a new in-memory object store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
		baseURL: "https://storage.invalid",
	}
}

// Put stores an artifact under the given key
func (s *MemoryObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = copied
	s.types[key] = contentType
	return nil
}

// URL returns a synthetic download URL
func (s *MemoryObjectStorage) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	return s.baseURL + "/" + key, nil
}

// Get returns a stored artifact, used by tests and the dev server
func (s *MemoryObjectStorage) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return data, s.types[key], true
}

// Len returns the number of stored artifacts
func (s *MemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
