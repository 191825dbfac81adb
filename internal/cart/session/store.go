package session

import (
	"sync"

	"github.com/dwikikusuma/sportsstore/internal/cart/domain"
	"github.com/google/uuid"
)

// Store keeps one Cart per browser session. Only the map is guarded;
// each cart is owned by exactly one session, so cart mutation itself
// needs no locking.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*domain.Cart),
	}
}

// NewID mints a fresh session id for the cookie.
func NewID() string {
	return uuid.NewString()
}

// Fetch returns the session's cart, creating an empty one on first use.
func (s *Store) Fetch(sessionID string) *domain.Cart {
	s.mu.RLock()
	cart, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return cart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[sessionID]; ok {
		return cart
	}
	cart = domain.New()
	s.carts[sessionID] = cart
	return cart
}

// Drop discards the session's cart.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
