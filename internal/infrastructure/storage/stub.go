package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StubObjectStorage keeps objects in memory. It exists for tests and
// local development without an S3 endpoint.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	BaseURL string
}

// NewStubObjectStorage creates an empty in-memory store
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "https://stub-storage.local"
	}
	return &StubObjectStorage{
		objects: make(map[string][]byte),
		BaseURL: baseURL,
	}
}

func (s *StubObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = buf
	return nil
}

func (s *StubObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return fmt.Sprintf("%s/%s", s.BaseURL, storageKey), time.Now().Add(expiresIn), nil
}

func (s *StubObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the key has been uploaded
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// Object returns the stored bytes for a key, for test assertions
func (s *StubObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
