package cache

import (
	"context"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/shared"
)

type entry struct {
	resourceID string
	expiresAt  time.Time
}

// InMemoryIdempotencyStore implements IdempotencyStore with a map. Keys are
// not shared between processes, so it only fits single-instance deployments
// and tests.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	entries   map[string]entry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts a goroutine that
// evicts expired keys every cleanupInterval.
func NewInMemoryIdempotencyStore(cleanupInterval time.Duration) *InMemoryIdempotencyStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	store := &InMemoryIdempotencyStore{
		entries:  make(map[string]entry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop(cleanupInterval)

	return store
}

// Reserve claims key unless a live entry already holds it
func (s *InMemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && s.now().Before(e.expiresAt) {
		return false, nil
	}
	s.entries[key] = entry{resourceID: pendingValue, expiresAt: s.now().Add(ttl)}
	return true, nil
}

// Bind stores the created resource id under key
func (s *InMemoryIdempotencyStore) Bind(_ context.Context, key, resourceID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{resourceID: resourceID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Lookup returns the resource id bound to key
func (s *InMemoryIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.resourceID, true, nil
}

// Release deletes the key
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of stored keys, expired ones included
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
