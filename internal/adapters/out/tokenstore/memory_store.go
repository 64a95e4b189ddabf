package tokenstore

import (
	"context"
	"sync"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

var _ ports.RefreshTokenStore = (*MemoryStore)(nil)

type memoryEntry struct {
	userID    kernel.UUID
	expiresAt time.Time
}

// MemoryStore is used when no Redis address is configured. Tokens do not survive
// a restart and are not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, tokenID string, userID kernel.UUID, ttl time.Duration) error {
	if tokenID == "" {
		return errs.NewValueIsRequiredError("token id")
	}
	if ttl <= 0 {
		return errs.NewValueIsOutOfRangeError("ttl", ttl, time.Second, "unbounded")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)
	s.entries[tokenID] = memoryEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(_ context.Context, tokenID string) (kernel.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[tokenID]
	delete(s.entries, tokenID)
	if !ok || !s.now().Before(entry.expiresAt) {
		return kernel.UUID{}, errs.NewUnauthenticatedError("refresh token is unknown or already used")
	}
	return entry.userID, nil
}

// evictExpired must be called with mu held.
func (s *MemoryStore) evictExpired(now time.Time) {
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
