package cart

import (
	"context"
	"sync"
	"time"

	"github.com/lamsashop/lamsa/internal/domain"
)

// MemoryStore keeps carts in process memory. The default backend for
// development and single-instance deployments; carts do not survive a
// restart.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]memoryEntry
}

type memoryEntry struct {
	cart      domain.Cart
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]memoryEntry)}
}

var _ Store = (*MemoryStore)(nil)

// Get loads the cart for a session token.
func (s *MemoryStore) Get(ctx context.Context, token string) (*domain.Cart, error) {
	s.mu.RLock()
	entry, ok := s.carts[token]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return &domain.Cart{}, nil
	}

	// Copy out so callers never share line slices with the store.
	c := domain.Cart{Lines: make([]domain.CartLine, len(entry.cart.Lines))}
	copy(c.Lines, entry.cart.Lines)
	return &c, nil
}

// Save writes the cart back and refreshes its TTL.
func (s *MemoryStore) Save(ctx context.Context, token string, c *domain.Cart) error {
	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)

	s.mu.Lock()
	s.carts[token] = memoryEntry{
		cart:      domain.Cart{Lines: lines},
		expiresAt: time.Now().Add(TTL),
	}
	s.mu.Unlock()
	return nil
}

// Delete drops the cart.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.carts, token)
	s.mu.Unlock()
	return nil
}

// Sweep removes expired carts and returns how many were removed.
// Called by the cleanup worker.
func (s *MemoryStore) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for token, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, token)
			n++
		}
	}
	return n
}
